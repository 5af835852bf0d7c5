package config

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingStripeSecretKey) {
		t.Fatalf("expected missing secret key, got %v", err)
	}

	cfg.StripeSecretKey = "sk_test"
	if err := cfg.Validate(); !errors.Is(err, ErrMissingStripeWebhookSecret) {
		t.Fatalf("expected missing webhook secret, got %v", err)
	}

	cfg.StripeWebhookSecret = "whsec_test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.HTTPAddr)
	}
	if cfg.ComplianceSweepInterval != 24*time.Hour {
		t.Fatalf("unexpected default sweep interval %v", cfg.ComplianceSweepInterval)
	}
	if cfg.StripeAPIBaseURL != "https://api.stripe.com" {
		t.Fatalf("unexpected default api base %q", cfg.StripeAPIBaseURL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_live_x")
	t.Setenv("STRIPE_WEBHOOK_SECRET", " whsec_y ")
	t.Setenv("COMPLIANCE_SWEEP_INTERVAL", "6h")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg := Load()
	if cfg.StripeSecretKey != "sk_live_x" {
		t.Fatalf("unexpected secret key %q", cfg.StripeSecretKey)
	}
	if cfg.StripeWebhookSecret != "whsec_y" {
		t.Fatalf("expected trimmed webhook secret, got %q", cfg.StripeWebhookSecret)
	}
	if cfg.ComplianceSweepInterval != 6*time.Hour {
		t.Fatalf("unexpected sweep interval %v", cfg.ComplianceSweepInterval)
	}
	if !cfg.EmailEnabled() {
		t.Fatalf("expected email enabled with smtp host set")
	}
}

func TestLoadRateLimitDefaults(t *testing.T) {
	cfg := Load()

	if cfg.RateLimit.Enabled {
		t.Fatal("expected rate limiting off by default")
	}
	if cfg.RateLimit.WebhookRate != 20 || cfg.RateLimit.WebhookBurst != 40 {
		t.Fatalf("unexpected webhook defaults: %+v", cfg.RateLimit)
	}
	if cfg.RateLimit.ReportRate != 5 || cfg.RateLimit.ReportBurst != 10 {
		t.Fatalf("unexpected report defaults: %+v", cfg.RateLimit)
	}
}

func TestLoadRateLimitFromEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REDIS_ADDR", " redis:6379 ")
	t.Setenv("RATE_LIMIT_WEBHOOK_RATE", "2.5")
	t.Setenv("RATE_LIMIT_REPORT_BURST", "not-a-number")

	cfg := Load()
	if !cfg.RateLimit.Enabled {
		t.Fatal("expected rate limiting enabled")
	}
	if cfg.RateLimit.RedisAddr != "redis:6379" {
		t.Fatalf("expected trimmed redis addr, got %q", cfg.RateLimit.RedisAddr)
	}
	if cfg.RateLimit.WebhookRate != 2.5 {
		t.Fatalf("unexpected webhook rate %v", cfg.RateLimit.WebhookRate)
	}
	// Unparseable values fall back to the default instead of failing startup.
	if cfg.RateLimit.ReportBurst != 10 {
		t.Fatalf("unexpected report burst %v", cfg.RateLimit.ReportBurst)
	}
}

func TestEmailEnabled(t *testing.T) {
	if (Config{}).EmailEnabled() {
		t.Fatalf("expected email disabled without smtp host")
	}
}
