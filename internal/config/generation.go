package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-units"
)

const (
	// EnvGenerationAgentTimeout overrides the per-agent generation timeout.
	EnvGenerationAgentTimeout = "GENERATION_AGENT_TIMEOUT"

	// EnvGenerationFallbackTolerance overrides the fallback warning threshold.
	EnvGenerationFallbackTolerance = "GENERATION_FALLBACK_TOLERANCE"

	// EnvGenerationMaxRawCapture overrides the raw output capture limit.
	EnvGenerationMaxRawCapture = "GENERATION_MAX_RAW_CAPTURE"
)

// GenerationConfig tunes listing generation behavior.
type GenerationConfig struct {
	AgentTimeout      string `toml:"agent_timeout"`
	FallbackTolerance int    `toml:"fallback_tolerance"`
	MaxRawCapture     string `toml:"max_raw_capture"`
}

// AgentTimeoutDuration parses and returns the per-agent timeout as a time.Duration.
func (c *GenerationConfig) AgentTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.AgentTimeout)
	return d
}

// MaxRawCaptureBytes parses and returns the raw capture limit in bytes.
func (c *GenerationConfig) MaxRawCaptureBytes() int64 {
	n, _ := units.FromHumanSize(c.MaxRawCapture)
	return n
}

// Finalize applies defaults, loads environment overrides, and validates the generation configuration.
func (c *GenerationConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *GenerationConfig) Merge(overlay *GenerationConfig) {
	if overlay.AgentTimeout != "" {
		c.AgentTimeout = overlay.AgentTimeout
	}
	if overlay.FallbackTolerance != 0 {
		c.FallbackTolerance = overlay.FallbackTolerance
	}
	if overlay.MaxRawCapture != "" {
		c.MaxRawCapture = overlay.MaxRawCapture
	}
}

func (c *GenerationConfig) loadDefaults() {
	if c.AgentTimeout == "" {
		c.AgentTimeout = "120s"
	}
	if c.MaxRawCapture == "" {
		c.MaxRawCapture = "4KB"
	}
}

func (c *GenerationConfig) loadEnv() {
	if v := os.Getenv(EnvGenerationAgentTimeout); v != "" {
		c.AgentTimeout = v
	}
	if v := os.Getenv(EnvGenerationFallbackTolerance); v != "" {
		if tolerance, err := strconv.Atoi(v); err == nil {
			c.FallbackTolerance = tolerance
		}
	}
	if v := os.Getenv(EnvGenerationMaxRawCapture); v != "" {
		c.MaxRawCapture = v
	}
}

func (c *GenerationConfig) validate() error {
	if _, err := time.ParseDuration(c.AgentTimeout); err != nil {
		return fmt.Errorf("invalid agent_timeout: %w", err)
	}
	if c.FallbackTolerance < 0 {
		return fmt.Errorf("fallback_tolerance must not be negative, got %d", c.FallbackTolerance)
	}
	if _, err := units.FromHumanSize(c.MaxRawCapture); err != nil {
		return fmt.Errorf("invalid max_raw_capture: %w", err)
	}
	return nil
}
