package config_test

import (
	"testing"

	"github.com/unclebandit/customer-service-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	if cfg.HTTPAddr == "" {
		t.Error("expected a default HTTP address")
	}
	if cfg.ProductServiceURL == "" {
		t.Error("expected a default product service URL")
	}
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "customers")

	cfg := config.Load()
	want := "postgres://svc:pw@db.internal:5433/customers?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN mismatch:\n got %s\nwant %s", got, want)
	}
}
