package config

import (
	"fmt"

	"github.com/skillsenselab/localstt/internal/logger"
	"github.com/skillsenselab/localstt/internal/observability"
	"github.com/skillsenselab/localstt/internal/server"
	"github.com/skillsenselab/localstt/internal/transcribe"
)

// ServiceName is used for config file discovery and telemetry resource attributes.
const ServiceName = "localstt"

// Config is the aggregate service configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging   logger.Config            `yaml:"logging" mapstructure:"logging"`
	Server    server.Config            `yaml:"server" mapstructure:"server"`
	Engine    transcribe.EngineConfig  `yaml:"engine" mapstructure:"engine"`
	Upload    transcribe.UploadConfig  `yaml:"upload" mapstructure:"upload"`
	Profile   transcribe.ProfileConfig `yaml:"profile" mapstructure:"profile"`
	Telemetry observability.Config     `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults applies default values to all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Engine.ApplyDefaults()
	c.Upload.ApplyDefaults()
	c.Profile.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks the configuration for invalid values across all sections.
func (c *Config) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}
	sections := []struct {
		name     string
		validate func() error
	}{
		{"logging", c.Logging.Validate},
		{"server", c.Server.Validate},
		{"engine", c.Engine.Validate},
		{"upload", c.Upload.Validate},
		{"profile", c.Profile.Validate},
		{"telemetry", c.Telemetry.Validate},
	}
	for _, s := range sections {
		if err := s.validate(); err != nil {
			return fmt.Errorf("config %s: %w", s.name, err)
		}
	}
	return nil
}
