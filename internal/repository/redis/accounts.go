package redis

import (
	"context"
	"fmt"
	"strings"

	red "github.com/redis/go-redis/v9"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/repository"
)

const defaultAccountPrefix = "auth"

// createAccountScript claims the lower-cased username in the index hash and
// writes the account hash in one step. Returns 0 when the name is taken.
var createAccountScript = red.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return 0
end
redis.call('HSET', KEYS[2], unpack(ARGV, 3))
return 1
`)

// setTokenScript swaps the token field only when it still holds the expected
// value. ARGV: has_expected, expected, has_next, next.
// Returns -1 for a missing account, 0 for a lost swap, 1 on success.
var setTokenScript = red.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
local current = redis.call('HGET', KEYS[1], 'token')
if ARGV[1] == '1' then
	if current ~= ARGV[2] then
		return 0
	end
elseif current then
	return 0
end
if ARGV[3] == '1' then
	redis.call('HSET', KEYS[1], 'token', ARGV[4])
else
	redis.call('HDEL', KEYS[1], 'token')
end
return 1
`)

// AccountRepository implements port.AccountRepository on Redis hashes.
// Each account lives under <prefix>:account:<username>; <prefix>:usernames
// maps lower-cased usernames to their stored spelling.
type AccountRepository struct {
	client *red.Client
	prefix string
}

// NewAccountRepository constructs a Redis-backed account repository.
func NewAccountRepository(client *red.Client, keyPrefix string) *AccountRepository {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultAccountPrefix
	}
	return &AccountRepository{client: client, prefix: prefix}
}

// Create stores a new account unless the username is already claimed in any letter case.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	args := []any{
		strings.ToLower(account.Username), account.Username,
		"username", account.Username,
		"name", account.Name,
		"email", account.Email,
		"phone", account.Phone,
		"password", account.PasswordCiphertext,
		"status", string(account.Status),
	}
	if account.SessionToken != nil {
		args = append(args, "token", *account.SessionToken)
	}

	created, err := createAccountScript.Run(ctx, r.client, []string{r.indexKey(), r.accountKey(account.Username)}, args...).Int()
	if err != nil {
		return fmt.Errorf("redis create account: %w", err)
	}
	if created == 0 {
		return fmt.Errorf("create account %q: %w", account.Username, repository.ErrDuplicate)
	}

	return nil
}

// FindByUsername loads the account stored under the exact username.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if username == "" {
		return nil, repository.ErrNotFound
	}

	fields, err := r.client.HGetAll(ctx, r.accountKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load account: %w", err)
	}
	if len(fields) == 0 {
		return nil, repository.ErrNotFound
	}

	account := domain.Account{
		Username:           fields["username"],
		Name:               fields["name"],
		Email:              fields["email"],
		Phone:              fields["phone"],
		PasswordCiphertext: fields["password"],
		Status:             domain.AccountStatus(fields["status"]),
	}
	if token, ok := fields["token"]; ok {
		account.SessionToken = &token
	}

	return &account, nil
}

// UsernameTaken reports whether the lower-cased username is present in the index.
func (r *AccountRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	taken, err := r.client.HExists(ctx, r.indexKey(), strings.ToLower(username)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check username: %w", err)
	}
	return taken, nil
}

// SetSessionToken swaps the token field atomically when it still equals expected.
func (r *AccountRepository) SetSessionToken(ctx context.Context, username string, expected, next *string) error {
	args := []any{"0", "", "0", ""}
	if expected != nil {
		args[0], args[1] = "1", *expected
	}
	if next != nil {
		args[2], args[3] = "1", *next
	}

	result, err := setTokenScript.Run(ctx, r.client, []string{r.accountKey(username)}, args...).Int()
	if err != nil {
		return fmt.Errorf("redis update token: %w", err)
	}

	switch result {
	case -1:
		return repository.ErrNotFound
	case 0:
		return repository.ErrStaleState
	default:
		return nil
	}
}

func (r *AccountRepository) accountKey(username string) string {
	return fmt.Sprintf("%s:account:%s", r.prefix, username)
}

func (r *AccountRepository) indexKey() string {
	return r.prefix + ":usernames"
}

var _ port.AccountRepository = (*AccountRepository)(nil)
