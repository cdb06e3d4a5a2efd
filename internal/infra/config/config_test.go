package config

import (
	"errors"
	"testing"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("AUTH_SECRET_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.Backend != StoreBackendPostgres {
		t.Fatalf("expected postgres backend, got %q", cfg.Store.Backend)
	}
	if cfg.App.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.App.Port)
	}
	if !cfg.Postgres.AutoMigrate {
		t.Fatalf("expected auto migrate by default")
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("expected no default brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoadReadsBareSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "from-bare-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Security.SecretKey != "from-bare-env" {
		t.Fatalf("expected secret key from SECRET_KEY, got %q", cfg.Security.SecretKey)
	}
}

func TestLoadPrefersPrefixedEnv(t *testing.T) {
	t.Setenv("AUTH_STORE_BACKEND", "redis")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("AUTH_REDIS_KEY_PREFIX", "accounts")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.Backend != StoreBackendRedis {
		t.Fatalf("expected redis backend, got %q", cfg.Store.Backend)
	}
	if cfg.Redis.KeyPrefix != "accounts" {
		t.Fatalf("expected key prefix override, got %q", cfg.Redis.KeyPrefix)
	}
}

func TestLoadWithoutStoreCredentialsFailsValidation(t *testing.T) {
	for _, key := range []string{"USER", "PASSWORD", "DATABASE"} {
		t.Setenv("POSTGRES_"+key, "")
		t.Setenv("AUTH_POSTGRES_"+key, "")
	}
	t.Setenv("AUTH_STORE_BACKEND", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SECRET_KEY", "only-the-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Postgres.User != "" || cfg.Postgres.Password != "" || cfg.Postgres.Database != "" {
		t.Fatalf("store credentials must not have defaults, got %+v", cfg.Postgres)
	}
	if err := cfg.Validate(); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func validConfig() *AppConfig {
	return &AppConfig{
		App:      AppSettings{Port: 8080},
		Store:    StoreSettings{Backend: StoreBackendPostgres},
		Postgres: PostgresSettings{Host: "localhost", Database: "auth", User: "auth", Password: "secret"},
		Security: SecuritySettings{SecretKey: "key"},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(*AppConfig){
		"missing secret":   func(c *AppConfig) { c.Security.SecretKey = " " },
		"bad port":         func(c *AppConfig) { c.App.Port = 0 },
		"unknown backend":  func(c *AppConfig) { c.Store.Backend = "mysql" },
		"postgres no host": func(c *AppConfig) { c.Postgres.Host = "" },
		"postgres no pass": func(c *AppConfig) { c.Postgres.Password = "" },
		"redis no host": func(c *AppConfig) {
			c.Store.Backend = StoreBackendRedis
			c.Redis.Host = ""
		},
	}

	for name, mutate := range cases {
		cfg := validConfig()
		mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, domain.ErrConfiguration) {
			t.Fatalf("%s: expected ErrConfiguration, got %v", name, err)
		}
	}
}
