package config_test

import (
	"testing"

	"github.com/JaimeStill/listing-lab/internal/config"
)

func TestCORSConfig_Finalize_Defaults(t *testing.T) {
	cfg := &config.CORSConfig{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if len(cfg.AllowedMethods) != 5 {
		t.Errorf("AllowedMethods = %v, want 5 defaults", cfg.AllowedMethods)
	}

	if len(cfg.AllowedHeaders) != 2 {
		t.Errorf("AllowedHeaders = %v, want 2 defaults", cfg.AllowedHeaders)
	}

	if cfg.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", cfg.MaxAge)
	}

	if cfg.Enabled {
		t.Error("Enabled should default to false")
	}
}

func TestCORSConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvCORSEnabled, "true")
	t.Setenv(config.EnvCORSOrigins, "http://localhost:4200, http://localhost:3000")
	t.Setenv(config.EnvCORSMaxAge, "600")

	cfg := &config.CORSConfig{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled should be true")
	}

	if len(cfg.Origins) != 2 {
		t.Fatalf("Origins = %v, want 2 entries", cfg.Origins)
	}

	if cfg.Origins[0] != "http://localhost:4200" {
		t.Errorf("Origins[0] = %q, want trimmed origin", cfg.Origins[0])
	}

	if cfg.MaxAge != 600 {
		t.Errorf("MaxAge = %d, want 600", cfg.MaxAge)
	}
}

func TestCORSConfig_Merge(t *testing.T) {
	base := &config.CORSConfig{
		Enabled: false,
		Origins: []string{"http://localhost:4200"},
		MaxAge:  3600,
	}

	overlay := &config.CORSConfig{
		Enabled: true,
		Origins: []string{"https://app.example.com"},
		MaxAge:  600,
	}

	base.Merge(overlay)

	if !base.Enabled {
		t.Error("Enabled should merge to true")
	}

	if len(base.Origins) != 1 || base.Origins[0] != "https://app.example.com" {
		t.Errorf("Origins = %v, want overlay origins", base.Origins)
	}

	if base.MaxAge != 600 {
		t.Errorf("MaxAge = %d, want 600", base.MaxAge)
	}
}
