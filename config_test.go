package goToken

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := defaultConfig()
	cfg.JWT.SigningSecret = []byte("config-test-secret-key-material")
	return cfg
}

func TestDefaultConfigValidatesWithSecret(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config with secret to validate, got %v", err)
	}
}

func TestConfigRejectsMissingSecret(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure without signing secret")
	}

	cfg.JWT.SigningSecret = []byte("short")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for short signing secret")
	}
}

func TestConfigRejectsBadTTLs(t *testing.T) {
	cfg := validTestConfig()
	cfg.JWT.AccessTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for zero AccessTTL")
	}

	cfg = validTestConfig()
	cfg.Refresh.TTL = -time.Minute
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for negative refresh TTL")
	}

	cfg = validTestConfig()
	cfg.JWT.Leeway = 5 * time.Minute
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for oversized leeway")
	}
}

func TestConfigRejectsWeakPasswordParams(t *testing.T) {
	cfg := validTestConfig()
	cfg.Password.Memory = 1024
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for weak argon2 memory")
	}

	cfg = validTestConfig()
	cfg.Password.SaltLength = 8
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for short salt")
	}
}

func TestConfigRejectsShortRefreshValue(t *testing.T) {
	cfg := validTestConfig()
	cfg.Refresh.ValueBytes = 8
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for short refresh value")
	}
}

func TestConfigAccountRequiresDefaultRoles(t *testing.T) {
	cfg := validTestConfig()
	cfg.Account.Enabled = true
	cfg.Account.DefaultRoles = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for empty default roles")
	}

	cfg.Account.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled account creation to skip role check, got %v", err)
	}
}

func TestConfigProductionModeTightening(t *testing.T) {
	cfg := validTestConfig()
	cfg.Security.ProductionMode = true

	// 31-byte secret passes the baseline but not production hardening.
	cfg.JWT.SigningSecret = []byte(strings.Repeat("k", 31))
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected production mode to require a 32-byte secret")
	}

	cfg.JWT.SigningSecret = []byte(strings.Repeat("k", 32))
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected hardened config to validate, got %v", err)
	}

	cfg.JWT.AccessTTL = 2 * time.Hour
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected production mode to cap AccessTTL at 1h")
	}

	cfg.JWT.AccessTTL = time.Hour
	cfg.Refresh.TTL = 60 * 24 * time.Hour
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected production mode to cap refresh TTL at 30 days")
	}
}

func TestCloneConfigIsolatesMutableFields(t *testing.T) {
	cfg := validTestConfig()
	cfg.Account.DefaultRoles = []string{"user"}

	clone := cloneConfig(cfg)
	clone.JWT.SigningSecret[0] ^= 0xFF
	clone.Account.DefaultRoles[0] = "mutated"

	if cfg.JWT.SigningSecret[0] == clone.JWT.SigningSecret[0] {
		t.Fatal("expected signing secret to be deep-copied")
	}
	if cfg.Account.DefaultRoles[0] != "user" {
		t.Fatal("expected default roles to be deep-copied")
	}
}

func TestBuilderRequiresDependencies(t *testing.T) {
	cfg := validTestConfig()

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("expected build failure without user provider")
	}

	up := newMockUserProvider()
	if _, err := New().WithConfig(cfg).WithUserProvider(up).Build(); err == nil {
		t.Fatal("expected build failure without redis client or store")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	builder := New().
		WithConfig(validTestConfig()).
		WithRedis(rdb).
		WithUserProvider(newMockUserProvider())

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := builder.Build(); err == nil {
		t.Fatal("expected second Build on the same builder to fail")
	}
}
