package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/security"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/repository"
)

type memoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]domain.Account

	createCalls   int
	setTokenCalls int
	findCalls     int

	findErr     error
	createErr   error
	setTokenErr error
	// skipUniqueCheck makes UsernameTaken always report false, simulating a
	// concurrent signup that already passed the pre-check.
	skipUniqueCheck bool
	// beforeSetToken runs once before the next SetSessionToken call.
	beforeSetToken func(m *memoryAccountRepository)
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{accounts: make(map[string]domain.Account)}
}

func (m *memoryAccountRepository) Create(_ context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	for name := range m.accounts {
		if strings.EqualFold(name, account.Username) {
			return fmt.Errorf("insert: %w", repository.ErrDuplicate)
		}
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *memoryAccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	account, ok := m.accounts[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if account.SessionToken != nil {
		token := *account.SessionToken
		account.SessionToken = &token
	}
	return &account, nil
}

func (m *memoryAccountRepository) UsernameTaken(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.skipUniqueCheck {
		return false, nil
	}
	for name := range m.accounts {
		if strings.EqualFold(name, username) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryAccountRepository) SetSessionToken(_ context.Context, username string, expected, next *string) error {
	if hook := m.beforeSetToken; hook != nil {
		m.beforeSetToken = nil
		hook(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.setTokenCalls++
	if m.setTokenErr != nil {
		return m.setTokenErr
	}
	account, ok := m.accounts[username]
	if !ok {
		return repository.ErrNotFound
	}
	switch {
	case expected == nil && account.SessionToken != nil:
		return repository.ErrStaleState
	case expected != nil && (account.SessionToken == nil || *account.SessionToken != *expected):
		return repository.ErrStaleState
	}
	if next == nil {
		account.SessionToken = nil
	} else {
		token := *next
		account.SessionToken = &token
	}
	m.accounts[username] = account
	return nil
}

func (m *memoryAccountRepository) token(username string) *string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[username].SessionToken
}

type sequenceTokenSource struct {
	next int
}

func (s *sequenceTokenSource) NewSessionToken() (string, error) {
	s.next++
	return fmt.Sprintf("%064x", s.next), nil
}

type recordingPublisher struct {
	registered []domain.AccountRegisteredEvent
	opened     []domain.SessionOpenedEvent
	closed     []domain.SessionClosedEvent
	err        error
}

func (p *recordingPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	p.registered = append(p.registered, event)
	return p.err
}

func (p *recordingPublisher) PublishSessionOpened(_ context.Context, event domain.SessionOpenedEvent) error {
	p.opened = append(p.opened, event)
	return p.err
}

func (p *recordingPublisher) PublishSessionClosed(_ context.Context, event domain.SessionClosedEvent) error {
	p.closed = append(p.closed, event)
	return p.err
}

type recordingMetrics struct {
	outcomes []string
}

func (m *recordingMetrics) ObserveOutcome(operation, outcome string) {
	m.outcomes = append(m.outcomes, operation+":"+outcome)
}

func newTestCipher(t *testing.T) *security.FernetCipher {
	t.Helper()

	key, err := security.GenerateFernetKey()
	if err != nil {
		t.Fatalf("GenerateFernetKey: %v", err)
	}
	cipher, err := security.NewFernetCipher(key)
	if err != nil {
		t.Fatalf("NewFernetCipher: %v", err)
	}
	return cipher
}
