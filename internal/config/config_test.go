package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("MANAGER_PIN", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
	if cfg.ManagerPIN != "" {
		t.Fatalf("expected empty MANAGER_PIN when unset, got %q", cfg.ManagerPIN)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CURRENCY_CODE", "")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CurrencyCode != "AED" {
		t.Fatalf("CurrencyCode = %q, want AED", cfg.CurrencyCode)
	}
	if cfg.CatalogCacheTTLSeconds != 300 {
		t.Fatalf("CatalogCacheTTLSeconds = %d, want 300", cfg.CatalogCacheTTLSeconds)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "-5")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "zero")

	cfg := Load()
	if cfg.CatalogCacheTTLSeconds != 300 {
		t.Fatalf("CatalogCacheTTLSeconds = %d, want fallback 300", cfg.CatalogCacheTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("AccessTokenTTLMinutes = %d, want fallback 480", cfg.AccessTokenTTLMinutes)
	}
}
