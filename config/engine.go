package config

import (
	"fmt"

	"github.com/parakit/parakit/logger"
	"github.com/parakit/parakit/para"
)

// EngineConfig contains the configuration fields an application embedding
// the engine needs. Projects extend this by embedding it in their own
// config structs.
//
// Example:
//
//	type MyConfig struct {
//	    config.EngineConfig `yaml:",inline" mapstructure:",squash"`
//	    InputDir string `yaml:"input_dir" mapstructure:"input_dir"`
//	}
type EngineConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Engine      para.Config   `yaml:"engine" mapstructure:"engine"`
}

// ApplyDefaults applies default values to the configuration.
// Override this in embedding structs and call c.EngineConfig.ApplyDefaults() first.
func (c *EngineConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	// Propagate the application name into logging so log lines carry it.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.Engine.ApplyDefaults()
}

// Validate validates the configuration fields.
// Override this in embedding structs and call c.EngineConfig.Validate() first.
func (c *EngineConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("config.engine: %w", err)
	}
	return nil
}
