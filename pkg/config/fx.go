package config

import (
	"go.uber.org/fx"

	"modelbridge/pkg/logger"
)

// Module derives component configuration from an already loaded *Config.
// The *Config itself is supplied by the caller after ProvideConfig succeeds.
var Module = fx.Module("config",
	fx.Provide(ProvideLoggerConfig),
)

// ProvideLoader provides a configuration loader.
func ProvideLoader() *Loader {
	return NewLoader()
}

// ProvideConfig loads and validates configuration once. Failure is fatal for startup.
func ProvideConfig(loader *Loader, path string) (*Config, error) {
	cfg, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ProvideLoggerConfig provides the logger configuration section.
func ProvideLoggerConfig(cfg *Config) *logger.Config {
	return cfg.Logger.ToLoggerConfig()
}
