package usecase

import (
	"regexp"
	"strings"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[1-9][0-9]{9}$`)
)

var (
	signupFields = []string{"username", "password", "name", "email", "phone"}
	loginFields  = []string{"username", "password"}
	logoutFields = []string{"username"}
)

// Payload is a decoded JSON request object.
type Payload map[string]any

// SignupInput is a validated signup payload.
type SignupInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Phone    string
}

// LoginInput is a validated login payload.
type LoginInput struct {
	Username string
	Password string
}

// LogoutInput is a validated logout payload.
type LogoutInput struct {
	Username string
	Token    string
}

// InputValidator normalizes request payloads and checks their shape. It never
// touches the store.
type InputValidator struct{}

// NewInputValidator constructs an InputValidator.
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateSignup trims the payload, requires every profile field and checks
// the email and phone formats. A username that trims to nothing counts as
// missing since no account could be keyed by it.
func (v *InputValidator) ValidateSignup(payload Payload) (SignupInput, error) {
	values, err := v.require(payload, signupFields)
	if err != nil {
		return SignupInput{}, err
	}
	if values["username"] == "" {
		return SignupInput{}, &domain.MissingFieldError{Fields: []string{"username"}}
	}

	in := SignupInput{
		Username: values["username"],
		Password: values["password"],
		Name:     values["name"],
		Email:    values["email"],
		Phone:    values["phone"],
	}

	if !emailPattern.MatchString(in.Email) {
		return SignupInput{}, domain.ErrInvalidEmail
	}
	if !phonePattern.MatchString(in.Phone) {
		return SignupInput{}, domain.ErrInvalidPhone
	}

	return in, nil
}

// ValidateLogin trims the payload and requires username and password.
func (v *InputValidator) ValidateLogin(payload Payload) (LoginInput, error) {
	values, err := v.require(payload, loginFields)
	if err != nil {
		return LoginInput{}, err
	}
	return LoginInput{Username: values["username"], Password: values["password"]}, nil
}

// ValidateLogout trims the payload and requires username. The token is
// checked by the session manager after the account lookup, so an absent token
// comes back empty.
func (v *InputValidator) ValidateLogout(payload Payload) (LogoutInput, error) {
	values, err := v.require(payload, logoutFields)
	if err != nil {
		return LogoutInput{}, err
	}

	token, err := optionalString(payload, "token")
	if err != nil {
		return LogoutInput{}, err
	}

	return LogoutInput{Username: values["username"], Token: token}, nil
}

// require trims every string entry of payload in place, then checks that all
// fields are present and hold strings. An empty string counts as supplied;
// a JSON null does not.
func (v *InputValidator) require(payload Payload, fields []string) (map[string]string, error) {
	for key, value := range payload {
		if s, ok := value.(string); ok {
			payload[key] = strings.TrimSpace(s)
		}
	}

	var missing []string
	for _, field := range fields {
		if value, ok := payload[field]; !ok || value == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingFieldError{Fields: missing}
	}

	values := make(map[string]string, len(fields))
	for _, field := range fields {
		s, ok := payload[field].(string)
		if !ok {
			return nil, &domain.InvalidFieldError{Field: field}
		}
		values[field] = s
	}

	return values, nil
}

// optionalString reads a field that may be absent or null. Present values
// must still be strings.
func optionalString(payload Payload, field string) (string, error) {
	value, ok := payload[field]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", &domain.InvalidFieldError{Field: field}
	}
	return strings.TrimSpace(s), nil
}
