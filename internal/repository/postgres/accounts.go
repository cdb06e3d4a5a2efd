package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/repository"
)

const accountsTable = "user_data"

var accountColumns = []string{
	"username",
	"name",
	"email",
	"phone",
	"password",
	"status",
	"token",
}

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewAccountRepository(exec pgExecutor) *AccountRepository {
	return &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new account row. The unique index on lower(username)
// turns a concurrent duplicate into repository.ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	var token any
	if account.SessionToken != nil {
		token = *account.SessionToken
	}

	stmt, args, err := r.builder.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.Username,
			account.Name,
			account.Email,
			account.Phone,
			account.PasswordCiphertext,
			string(account.Status),
			token,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("insert account %q: %w", account.Username, repository.ErrDuplicate)
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// FindByUsername retrieves the account whose username matches exactly.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	var (
		account domain.Account
		status  string
		token   sql.NullString
	)
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&account.Username,
		&account.Name,
		&account.Email,
		&account.Phone,
		&account.PasswordCiphertext,
		&status,
		&token,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	account.Status = domain.AccountStatus(status)
	if token.Valid {
		val := token.String
		account.SessionToken = &val
	}

	return &account, nil
}

// UsernameTaken reports whether any account already uses username, ignoring letter case.
func (r *AccountRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(accountsTable).
		Where(squirrel.Expr("lower(username) = lower(?)", username)).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build username exists sql: %w", err)
	}

	var exists bool
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}

	return exists, nil
}

// SetSessionToken replaces the session token only if the stored token still equals expected.
func (r *AccountRepository) SetSessionToken(ctx context.Context, username string, expected, next *string) error {
	var nextValue, expectedValue any
	if next != nil {
		nextValue = *next
	}
	if expected != nil {
		expectedValue = *expected
	}

	stmt, args, err := r.builder.Update(accountsTable).
		Set("token", nextValue).
		Where(squirrel.Eq{"username": username}).
		Where(squirrel.Eq{"token": expectedValue}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update token sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrStaleState
	}

	return nil
}

var _ port.AccountRepository = (*AccountRepository)(nil)
