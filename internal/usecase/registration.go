package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/logger"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/repository"
)

const tracerName = "github.com/legalmonkey/MIC-GitHub-Submission/internal/usecase"

// RegistrationService creates accounts with unique usernames.
type RegistrationService struct {
	accounts port.AccountRepository
	cipher   port.CredentialCipher
	events   port.EventPublisher
	metrics  port.AuthMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(accounts port.AccountRepository, cipher port.CredentialCipher, events port.EventPublisher) *RegistrationService {
	return &RegistrationService{
		accounts: accounts,
		cipher:   cipher,
		events:   events,
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithLogger attaches a structured logger.
func (s *RegistrationService) WithLogger(log *zap.Logger) *RegistrationService {
	if log != nil {
		s.logger = log
	}
	return s
}

// WithMetrics attaches an outcome recorder.
func (s *RegistrationService) WithMetrics(metrics port.AuthMetrics) *RegistrationService {
	s.metrics = metrics
	return s
}

// WithClock overrides the internal clock for deterministic tests.
func (s *RegistrationService) WithClock(clock func() time.Time) *RegistrationService {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Register rejects usernames already taken in any letter case, encrypts the
// password and persists the account logged out.
func (s *RegistrationService) Register(ctx context.Context, in SignupInput) (account domain.Account, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "RegistrationService.Register")
	defer func() {
		observe(s.metrics, "signup", err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcomeOf(err))
		}
		span.End()
	}()

	taken, err := s.accounts.UsernameTaken(ctx, in.Username)
	if err != nil {
		return domain.Account{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return domain.Account{}, domain.ErrDuplicateUsername
	}

	ciphertext, err := s.cipher.Encrypt(in.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("encrypt password: %w", err)
	}

	account = domain.Account{
		Username:           in.Username,
		Name:               in.Name,
		Email:              in.Email,
		Phone:              in.Phone,
		PasswordCiphertext: ciphertext,
		Status:             domain.AccountStatusRegistered,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent signup for the same name
			return domain.Account{}, domain.ErrDuplicateUsername
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	span.SetAttributes(attribute.String("account.status", string(account.Status)))
	s.logger.Info("account registered",
		zap.String("username", account.Username),
		zap.String("email", logger.MaskEmail(account.Email)),
		zap.String("phone", logger.MaskPhone(account.Phone)),
	)

	if s.events != nil {
		event := domain.AccountRegisteredEvent{
			EventID:      uuid.NewString(),
			Username:     account.Username,
			Email:        account.Email,
			Phone:        account.Phone,
			Status:       string(account.Status),
			RegisteredAt: s.now(),
		}
		if err := s.events.PublishAccountRegistered(ctx, event); err != nil {
			s.logger.Warn("failed to publish account registered event",
				zap.String("username", account.Username),
				zap.Error(err),
			)
		}
	}

	return account.Sanitized(), nil
}
