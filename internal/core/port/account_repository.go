package port

import (
	"context"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
)

// AccountRepository exposes persistence behavior for accounts.
//
// Implementations enforce case-insensitive username uniqueness on Create and
// report a collision as repository.ErrDuplicate. SetSessionToken is a
// compare-and-swap: it only writes when the stored token equals expected
// (nil meaning logged out) and returns repository.ErrStaleState otherwise.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	SetSessionToken(ctx context.Context, username string, expected, next *string) error
}
