package config

import (
	"testing"
	"time"

	"order_ledger/internal/domain/entities"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.LockBackend != "dynamodb" {
		t.Fatalf("expected dynamodb lock backend, got %s", cfg.LockBackend)
	}
	if cfg.Settings.LockTimeout != 10*time.Second {
		t.Fatalf("expected 10s lock timeout, got %s", cfg.Settings.LockTimeout)
	}
	if cfg.Settings.AccountSystem != entities.AccountSystemNone {
		t.Fatalf("expected no account system, got %s", cfg.Settings.AccountSystem)
	}
	if cfg.Settings.Currency != entities.DefaultCurrencyFormat() {
		t.Fatalf("expected default currency format, got %+v", cfg.Settings.Currency)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ACTIVE_GATEWAYS", "stripe, mercadopago,,")
	t.Setenv("CANCEL_REASONS", "dup:Duplicate order,fraud:Suspected fraud,other")
	t.Setenv("ACCOUNT_SYSTEM", "Shopp")
	t.Setenv("ORDER_CONFIRMATION", "always")
	t.Setenv("TXN_LOCK_BACKEND", "redis")
	t.Setenv("TXN_LOCK_TIMEOUT", "3s")
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", "token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Settings.ActiveGateways; len(got) != 2 || got[0] != "stripe" || got[1] != "mercadopago" {
		t.Fatalf("unexpected active gateways: %v", got)
	}
	if cfg.Settings.CancelReason("fraud") != "Suspected fraud" || cfg.Settings.CancelReason("other") != "other" {
		t.Fatalf("unexpected cancel reasons: %v", cfg.Settings.CancelReasons)
	}
	if cfg.Settings.AccountSystem != entities.AccountSystemShopp || !cfg.Settings.ConfirmationRequired() {
		t.Fatalf("unexpected settings: %+v", cfg.Settings)
	}
	if cfg.LockBackend != "redis" || cfg.Settings.LockTimeout != 3*time.Second {
		t.Fatalf("unexpected lock config: %s %s", cfg.LockBackend, cfg.Settings.LockTimeout)
	}
	if cfg.MercadoPagoToken != "token" {
		t.Fatalf("expected mercadopago token from env, got %q", cfg.MercadoPagoToken)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"account system": {"ACCOUNT_SYSTEM": "ldap"},
		"lock backend":   {"TXN_LOCK_BACKEND": "zookeeper"},
		"lock timeout":   {"TXN_LOCK_TIMEOUT": "0s"},
		"receipt copy":   {"RECEIPT_COPY": "true", "MERCHANT_EMAIL": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseCancelReasons(t *testing.T) {
	got := ParseCancelReasons(" dup : Duplicate , :orphan, x:")
	if len(got) != 2 || got["dup"] != "Duplicate" || got["x"] != "x" {
		t.Fatalf("unexpected reasons: %v", got)
	}
}
