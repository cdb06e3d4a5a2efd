package redis

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/config"
)

func TestNewClientHealthCheck(t *testing.T) {
	srv := miniredis.RunT(t)
	port, err := strconv.Atoi(srv.Port())
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}

	client, err := NewClient(context.Background(), config.RedisSettings{Host: srv.Host(), Port: port}, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}

	srv.Close()
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatalf("expected health check to fail once the server is gone")
	}
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	port, _ := strconv.Atoi(srv.Port())
	srv.Close()

	if _, err := NewClient(context.Background(), config.RedisSettings{Host: "127.0.0.1", Port: port}, nil); err == nil {
		t.Fatalf("expected error for unreachable server")
	}
}
