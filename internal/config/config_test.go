package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvOnlyKeys(t *testing.T) {
	t.Setenv("TARGET_ID", "careers")
	t.Setenv("SUBMIT_NAME", "Ada Lovelace")
	t.Setenv("SUBMIT_EMAIL", "ada@example.com")
	t.Setenv("SUBMIT_URL", "https://ada.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TargetID != "careers" {
		t.Fatalf("TargetID = %q, want careers", cfg.TargetID)
	}
	if cfg.SubmitName != "Ada Lovelace" || cfg.SubmitEmail != "ada@example.com" || cfg.SubmitURL != "https://ada.example.com" {
		t.Fatalf("submission fields not loaded: %q %q %q", cfg.SubmitName, cfg.SubmitEmail, cfg.SubmitURL)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("TokenTTL = %v, want 30m", cfg.TokenTTL)
	}
	if cfg.StorageCleanup != time.Hour {
		t.Fatalf("StorageCleanup = %v, want 1h", cfg.StorageCleanup)
	}
}

func TestLoadDefaultsRequestTimeoutToZero(t *testing.T) {
	t.Setenv("TARGET_ID", "careers")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Zero means the per-target timeout_seconds applies.
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0", cfg.RequestTimeout)
	}
}

func TestLoadOverridesRequestTimeoutFromEnv(t *testing.T) {
	t.Setenv("TARGET_ID", "careers")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Fatalf("RequestTimeout = %v, want 7s", cfg.RequestTimeout)
	}
}

func TestLoadRequiresTargetID(t *testing.T) {
	t.Setenv("TARGET_ID", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when target_id is unset")
	}
}

func TestLoadRejectsNonPositiveTokenTTL(t *testing.T) {
	t.Setenv("TARGET_ID", "careers")
	t.Setenv("TOKEN_TTL_SECONDS", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative token_ttl_seconds")
	}
}
