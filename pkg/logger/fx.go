package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides logger for fx dependency injection.
// It expects a *Config in the graph.
var Module = fx.Module("logger",
	fx.Provide(ProvideLoggerFromConfig),
)

// ProvideLoggerFromConfig provides a logger with configuration.
func ProvideLoggerFromConfig(cfg *Config, lc fx.Lifecycle) (*Logger, error) {
	logger, err := New(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("Logger initialized",
				zap.String("level", string(cfg.Level)),
				zap.String("output", cfg.OutputPath),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Sync on stderr returns EINVAL on some platforms.
			_ = logger.Sync()
			return nil
		},
	})

	return logger, nil
}
