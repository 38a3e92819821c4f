package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.CatalogCacheTTLSeconds != 300 {
		t.Fatalf("expected default cache TTL 300, got %d", cfg.CatalogCacheTTLSeconds)
	}
	if cfg.SessionTTLMinutes != 120 {
		t.Fatalf("expected default session TTL 120, got %d", cfg.SessionTTLMinutes)
	}
}

func TestLoadRejectsBadTTLs(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("SESSION_TTL_MINUTES", "-5")

	cfg := Load()
	if cfg.CatalogCacheTTLSeconds != 300 {
		t.Fatalf("expected fallback cache TTL 300, got %d", cfg.CatalogCacheTTLSeconds)
	}
	if cfg.SessionTTLMinutes != 120 {
		t.Fatalf("expected fallback session TTL 120, got %d", cfg.SessionTTLMinutes)
	}
}
