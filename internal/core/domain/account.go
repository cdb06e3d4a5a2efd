package domain

// AccountStatus is a free-form lifecycle tag stored with every account.
type AccountStatus string

// AccountStatusRegistered is assigned when an account is created through signup.
const AccountStatusRegistered AccountStatus = "registered"

// Account mirrors the persisted representation in the user_data table.
type Account struct {
	Username           string
	Name               string
	Email              string
	Phone              string
	PasswordCiphertext string
	Status             AccountStatus
	// SessionToken is nil while the account is logged out.
	SessionToken *string
}

// LoggedIn reports whether the account currently holds a session token.
func (a Account) LoggedIn() bool {
	return a.SessionToken != nil
}

// Sanitized returns a copy without credential or session material.
func (a Account) Sanitized() Account {
	a.PasswordCiphertext = ""
	a.SessionToken = nil
	return a
}
