package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/config"
)

type stubRunner struct {
	upErr      error
	version    uint
	versionErr error
	upCalls    int
	closeErr   error
}

func (s *stubRunner) Up() error {
	s.upCalls++
	return s.upErr
}

func (s *stubRunner) Version() (uint, bool, error) {
	return s.version, false, s.versionErr
}

func (s *stubRunner) Close() (error, error) {
	return nil, s.closeErr
}

func TestMigratorUpIgnoresNoChange(t *testing.T) {
	runner := &stubRunner{upErr: migrate.ErrNoChange, version: 1}
	m := &Migrator{m: runner, logger: zap.NewNop()}

	if err := m.Up(); err != nil {
		t.Fatalf("Up returned error: %v", err)
	}
	if runner.upCalls != 1 {
		t.Fatalf("expected one Up call, got %d", runner.upCalls)
	}
}

func TestMigratorUpPropagatesFailure(t *testing.T) {
	boom := errors.New("syntax error")
	m := &Migrator{m: &stubRunner{upErr: boom}, logger: zap.NewNop()}

	if err := m.Up(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}

func TestMigratorVersionWithoutMigrations(t *testing.T) {
	m := &Migrator{m: &stubRunner{versionErr: migrate.ErrNilVersion}, logger: zap.NewNop()}

	version, dirty, err := m.Version()
	if err != nil || version != 0 || dirty {
		t.Fatalf("expected clean zero version, got %d %v %v", version, dirty, err)
	}
}

func TestMigratorCloseJoinsErrors(t *testing.T) {
	boom := errors.New("db close")
	m := &Migrator{m: &stubRunner{closeErr: boom}, logger: zap.NewNop()}

	if err := m.Close(); !errors.Is(err, boom) {
		t.Fatalf("expected close error, got %v", err)
	}
}

func TestMigrateURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@h:5432/db":   "pgx5://u:p@h:5432/db",
		"postgresql://u:p@h:5432/db": "pgx5://u:p@h:5432/db",
		"pgx5://u:p@h:5432/db":       "pgx5://u:p@h:5432/db",
	}
	for in, want := range cases {
		if got := migrateURL(in); got != want {
			t.Fatalf("migrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDSNEscapesCredentials(t *testing.T) {
	dsn := DSN(config.PostgresSettings{
		Host:     "db",
		Port:     5432,
		User:     "auth",
		Password: "p@ss/word",
		Database: "auth",
		SSLMode:  "disable",
	})

	if !strings.HasPrefix(dsn, "postgres://auth:p%40ss%2Fword@db:5432/auth") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
	if !strings.HasSuffix(dsn, "sslmode=disable") {
		t.Fatalf("expected sslmode in dsn %q", dsn)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected up and down migrations, got %d files", len(entries))
	}
}
