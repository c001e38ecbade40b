package service

import (
	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/config"
	"github.com/javascan-dev/javascan/internal/rules"
)

// ConfigurationLoaderImpl loads analysis configuration and rule tables
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads configuration from a discovered config file, or
// falls back to the built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	cfg, err := config.LoadConfig("")
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// LoadRules loads the rule table referenced by the configuration, or the
// embedded default table when no override is configured
func (c *ConfigurationLoaderImpl) LoadRules(cfg *config.Config) (*rules.Table, error) {
	if cfg.Rules.Path != "" {
		table, err := rules.LoadFromFile(cfg.Rules.Path)
		if err != nil {
			return nil, domain.NewConfigError("failed to load rules table", err)
		}
		return table, nil
	}

	table, err := rules.Default()
	if err != nil {
		return nil, domain.NewConfigError("embedded rules table is invalid", err)
	}
	return table, nil
}
