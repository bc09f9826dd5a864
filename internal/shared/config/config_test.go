package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "OBJECT_STORE", "MAX_UPLOAD_BYTES", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if cfg.ObjectStoreType != StoreLocal {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RateLimitRPS != 1 || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "NONE")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.ObjectStoreType != StoreNone {
		t.Fatalf("expected none store, got %q", cfg.ObjectStoreType)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %#v", cfg.CORSAllowOrigin)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected 2.5 rps, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadReadsDotenvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	body := "TAXONOMY_FILE=./taxonomy.yaml\nPORT=9999\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("TAXONOMY_FILE", "")
	os.Unsetenv("TAXONOMY_FILE")

	cfg := Load()
	if cfg.TaxonomyFile != "./taxonomy.yaml" {
		t.Fatalf("expected TAXONOMY_FILE from .env, got %q", cfg.TaxonomyFile)
	}
	if cfg.Port != "7000" {
		t.Fatalf("environment should win over .env, got %q", cfg.Port)
	}
}
