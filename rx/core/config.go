package core

import (
	"context"

	"go.uber.org/zap"
)

// configKey is a typed context key for config injection.
// Each config type gets its own unique key.
type configKey[C any] struct{}

// WithConfig attaches a configuration value to the context.
// The config is keyed by its type, so only one instance of each config type
// can be stored. Later calls with the same type will override earlier ones.
//
// Example:
//
//	ctx := core.WithConfig(ctx, sql.QueryConfig{Timeout: time.Second})
func WithConfig[C any](ctx context.Context, cfg C) context.Context {
	return context.WithValue(ctx, configKey[C]{}, cfg)
}

// GetConfig retrieves a configuration of type C from the context.
// Returns the config and true if found, or zero value and false if not present.
func GetConfig[C any](ctx context.Context) (C, bool) {
	if cfg, ok := ctx.Value(configKey[C]{}).(C); ok {
		return cfg, true
	}
	return *new(C), false
}

// WithLogger attaches a logger used by subscriptions created under ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return WithConfig(ctx, logger)
}

// Logger returns the logger attached to ctx, or a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if logger, ok := GetConfig[*zap.Logger](ctx); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}
