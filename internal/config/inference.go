package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	// EnvInferenceBaseURL overrides the inference server base URL.
	EnvInferenceBaseURL = "INFERENCE_BASE_URL"

	// EnvInferenceModel overrides the model used for generation.
	EnvInferenceModel = "INFERENCE_MODEL"

	// EnvInferenceTimeout overrides the default generation timeout.
	EnvInferenceTimeout = "INFERENCE_TIMEOUT"

	// EnvInferenceTemperature overrides the default sampling temperature.
	EnvInferenceTemperature = "INFERENCE_TEMPERATURE"
)

// InferenceConfig contains connection settings for the local inference server.
type InferenceConfig struct {
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Timeout     string  `toml:"timeout"`
	Temperature float64 `toml:"temperature"`
}

// TimeoutDuration parses and returns the generation timeout as a time.Duration.
func (c *InferenceConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the inference configuration.
func (c *InferenceConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *InferenceConfig) Merge(overlay *InferenceConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
}

func (c *InferenceConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:11434"
	}
	if c.Model == "" {
		c.Model = "qwen2.5:latest"
	}
	if c.Timeout == "" {
		c.Timeout = "120s"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
}

func (c *InferenceConfig) loadEnv() {
	if v := os.Getenv(EnvInferenceBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvInferenceModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvInferenceTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvInferenceTemperature); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = temp
		}
	}
}

func (c *InferenceConfig) validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature)
	}
	return nil
}
