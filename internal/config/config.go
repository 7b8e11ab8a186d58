// Package config defines the configuration for both binaries.
package config

import (
	"fmt"
	"strings"

	"github.com/mcoutinho/salesdesk/pkg/config"
	"github.com/mcoutinho/salesdesk/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// Config is the POS front-end configuration.
type Config struct {
	API config.APIConfig `koanf:"api"`
	Log config.LogConfig `koanf:"log"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.API.String())
	b.WriteString(c.Log.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

var _ configloader.Validator = (*StubConfig)(nil)

// StubConfig is the stub backend configuration.
type StubConfig struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Log        config.LogConfig      `koanf:"log"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
}

func (c *StubConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Server ---\n")
	b.WriteString(fmt.Sprintf("  port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))
	b.WriteString(c.Log.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *StubConfig) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.Shutdown.Validate()
}
