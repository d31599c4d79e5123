package pagination

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvDefaultPageSize = "PAGINATION_DEFAULT_PAGE_SIZE"
	EnvMaxPageSize     = "PAGINATION_MAX_PAGE_SIZE"
)

type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	return c.validate()
}

func (c *Config) Merge(overlay Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}

	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = 20
	}

	if c.MaxPageSize == 0 {
		c.MaxPageSize = 100
	}
}

func (c *Config) loadEnv() {
	if value := os.Getenv(EnvDefaultPageSize); value != "" {
		if size, err := strconv.Atoi(value); err == nil {
			c.DefaultPageSize = size
		}
	}

	if value := os.Getenv(EnvMaxPageSize); value != "" {
		if size, err := strconv.Atoi(value); err == nil {
			c.MaxPageSize = size
		}
	}
}

func (c *Config) validate() error {
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be positive, got %d", c.DefaultPageSize)
	}

	if c.MaxPageSize < 1 {
		return fmt.Errorf("max page size must be positive, got %d", c.MaxPageSize)
	}

	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds max page size %d", c.DefaultPageSize, c.MaxPageSize)
	}

	return nil
}
