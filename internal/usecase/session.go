package usecase

import (
	"context"
	"crypto/subtle"
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

// tokenSwapAttempts bounds how often Login retries after losing a
// compare-and-swap to a concurrent login or logout.
const tokenSwapAttempts = 3

// SessionResult describes the session state after a login or logout.
type SessionResult struct {
	Username string
	Token    string
	// Created is true only when Login moved the account from logged out to logged in.
	Created bool
}

// SessionService drives the logged-out / logged-in state machine of an account.
type SessionService struct {
	accounts port.AccountRepository
	cipher   port.CredentialCipher
	tokens   port.TokenSource
	events   port.EventPublisher
	metrics  port.AuthMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(accounts port.AccountRepository, cipher port.CredentialCipher, tokens port.TokenSource, events port.EventPublisher, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	service := &SessionService{
		accounts: accounts,
		cipher:   cipher,
		tokens:   tokens,
		events:   events,
		logger:   log,
	}
	service.now = func() time.Time { return time.Now().UTC() }
	return service
}

// WithClock overrides the internal clock for deterministic tests.
func (s *SessionService) WithClock(clock func() time.Time) *SessionService {
	if clock != nil {
		s.now = clock
	}
	return s
}

// WithMetrics attaches an outcome recorder.
func (s *SessionService) WithMetrics(metrics port.AuthMetrics) *SessionService {
	s.metrics = metrics
	return s
}

// Login verifies the password and returns the account's session token,
// issuing one only when the account is logged out. Usernames match exactly.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (result SessionResult, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "SessionService.Login")
	defer func() {
		observe(s.metrics, "login", err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcomeOf(err))
		}
		span.SetAttributes(attribute.Bool("session.created", result.Created))
		span.End()
	}()

	account, err := s.accounts.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SessionResult{}, domain.ErrUserNotFound
		}
		return SessionResult{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := s.verifyPassword(account, in.Password); err != nil {
		return SessionResult{}, err
	}

	for attempt := 0; attempt < tokenSwapAttempts; attempt++ {
		if account.SessionToken != nil {
			return SessionResult{Username: account.Username, Token: *account.SessionToken}, nil
		}

		token, err := s.tokens.NewSessionToken()
		if err != nil {
			return SessionResult{}, fmt.Errorf("generate session token: %w", err)
		}

		err = s.accounts.SetSessionToken(ctx, account.Username, nil, &token)
		if err == nil {
			s.logger.Info("session opened",
				zap.String("username", account.Username),
				zap.String("token", logger.MaskString(token)),
			)
			s.publishOpened(ctx, account.Username)
			return SessionResult{Username: account.Username, Token: token, Created: true}, nil
		}
		if !errors.Is(err, repository.ErrStaleState) {
			return SessionResult{}, fmt.Errorf("store session token: %w", err)
		}

		// Another request changed the token since we read it; adopt its state.
		account, err = s.accounts.FindByUsername(ctx, in.Username)
		if err != nil {
			return SessionResult{}, fmt.Errorf("reload account: %w", err)
		}
	}

	return SessionResult{}, fmt.Errorf("store session token: %w", repository.ErrStaleState)
}

// Logout clears the session token when the supplied token is the current one.
func (s *SessionService) Logout(ctx context.Context, in LogoutInput) (result SessionResult, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "SessionService.Logout")
	defer func() {
		observe(s.metrics, "logout", err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcomeOf(err))
		}
		span.End()
	}()

	account, err := s.accounts.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SessionResult{}, domain.ErrIncorrectUsername
		}
		return SessionResult{}, fmt.Errorf("lookup account: %w", err)
	}

	if in.Token == "" {
		return SessionResult{}, domain.ErrMissingToken
	}

	if account.SessionToken == nil || subtle.ConstantTimeCompare([]byte(*account.SessionToken), []byte(in.Token)) != 1 {
		return SessionResult{}, domain.ErrTokenMismatch
	}

	token := in.Token
	if err := s.accounts.SetSessionToken(ctx, account.Username, &token, nil); err != nil {
		if errors.Is(err, repository.ErrStaleState) || errors.Is(err, repository.ErrNotFound) {
			return SessionResult{}, domain.ErrTokenMismatch
		}
		return SessionResult{}, fmt.Errorf("clear session token: %w", err)
	}

	s.logger.Info("session closed", zap.String("username", account.Username))
	s.publishClosed(ctx, account.Username)

	return SessionResult{Username: account.Username}, nil
}

// verifyPassword treats undecryptable ciphertext as a wrong password.
func (s *SessionService) verifyPassword(account *domain.Account, password string) error {
	stored, err := s.cipher.Decrypt(account.PasswordCiphertext)
	if err != nil {
		s.logger.Warn("stored password could not be decrypted",
			zap.String("username", account.Username),
			zap.Error(err),
		)
		return domain.ErrIncorrectPassword
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return domain.ErrIncorrectPassword
	}

	return nil
}

func (s *SessionService) publishOpened(ctx context.Context, username string) {
	if s.events == nil {
		return
	}
	event := domain.SessionOpenedEvent{
		EventID:  uuid.NewString(),
		Username: username,
		OpenedAt: s.now(),
	}
	if err := s.events.PublishSessionOpened(ctx, event); err != nil {
		s.logger.Warn("failed to publish session opened event", zap.String("username", username), zap.Error(err))
	}
}

func (s *SessionService) publishClosed(ctx context.Context, username string) {
	if s.events == nil {
		return
	}
	event := domain.SessionClosedEvent{
		EventID:  uuid.NewString(),
		Username: username,
		ClosedAt: s.now(),
	}
	if err := s.events.PublishSessionClosed(ctx, event); err != nil {
		s.logger.Warn("failed to publish session closed event", zap.String("username", username), zap.Error(err))
	}
}
