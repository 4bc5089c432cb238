package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "JWT_SECRET=from-file\nPORT=9090\nALLOWED_ORIGINS=http://a.in, http://b.in\nPHONE_REGION=in\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.in" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.PhoneRegion != "IN" {
		t.Errorf("PhoneRegion = %q, want IN", cfg.PhoneRegion)
	}
	if cfg.DashboardCacheTTL != time.Minute {
		t.Errorf("DashboardCacheTTL = %v, want 1m", cfg.DashboardCacheTTL)
	}
	if cfg.StorageProvider != "local" {
		t.Errorf("StorageProvider = %q, want local", cfg.StorageProvider)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("JWT_SECRET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, want from-env", cfg.JWTSecret)
	}
	if cfg.LowStockThreshold != 3 {
		t.Errorf("LowStockThreshold = %d, want 3", cfg.LowStockThreshold)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(""); err == nil {
		t.Error("expected error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORAGE_PROVIDER", "gcs")
	if _, err := Load(""); err == nil {
		t.Error("expected error for gcs without bucket")
	}

	t.Setenv("STORAGE_PROVIDER", "s3")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown provider")
	}
}
