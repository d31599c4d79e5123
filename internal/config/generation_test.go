package config_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/listing-lab/internal/config"
)

func TestGenerationConfig_Finalize_Defaults(t *testing.T) {
	cfg := &config.GenerationConfig{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.AgentTimeout != "120s" {
		t.Errorf("AgentTimeout = %q, want %q", cfg.AgentTimeout, "120s")
	}

	if cfg.FallbackTolerance != 0 {
		t.Errorf("FallbackTolerance = %d, want 0", cfg.FallbackTolerance)
	}

	if cfg.MaxRawCapture != "4KB" {
		t.Errorf("MaxRawCapture = %q, want %q", cfg.MaxRawCapture, "4KB")
	}
}

func TestGenerationConfig_AgentTimeoutDuration(t *testing.T) {
	cfg := &config.GenerationConfig{AgentTimeout: "45s"}

	if cfg.AgentTimeoutDuration() != 45*time.Second {
		t.Errorf("AgentTimeoutDuration() = %v, want 45s", cfg.AgentTimeoutDuration())
	}
}

func TestGenerationConfig_MaxRawCaptureBytes(t *testing.T) {
	tests := []struct {
		name    string
		capture string
		want    int64
	}{
		{"kilobytes", "4KB", 4000},
		{"megabytes", "1MB", 1000000},
		{"plain bytes", "512", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.GenerationConfig{MaxRawCapture: tt.capture}

			if got := cfg.MaxRawCaptureBytes(); got != tt.want {
				t.Errorf("MaxRawCaptureBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerationConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvGenerationAgentTimeout, "60s")
	t.Setenv(config.EnvGenerationFallbackTolerance, "3")
	t.Setenv(config.EnvGenerationMaxRawCapture, "8KB")

	cfg := &config.GenerationConfig{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.AgentTimeout != "60s" {
		t.Errorf("AgentTimeout = %q, want %q", cfg.AgentTimeout, "60s")
	}

	if cfg.FallbackTolerance != 3 {
		t.Errorf("FallbackTolerance = %d, want 3", cfg.FallbackTolerance)
	}

	if cfg.MaxRawCapture != "8KB" {
		t.Errorf("MaxRawCapture = %q, want %q", cfg.MaxRawCapture, "8KB")
	}
}

func TestGenerationConfig_Finalize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.GenerationConfig
	}{
		{"invalid timeout", config.GenerationConfig{AgentTimeout: "soon"}},
		{"negative tolerance", config.GenerationConfig{FallbackTolerance: -1}},
		{"invalid capture size", config.GenerationConfig{MaxRawCapture: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded with invalid config, want error")
			}
		})
	}
}
