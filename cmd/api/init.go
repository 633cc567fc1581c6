package main

import (
	"context"

	"neon-calculator/internal/config"
	"neon-calculator/internal/observability"
	"neon-calculator/internal/session"
)

// initTelemetry starts the configured OTLP pipelines and creates the
// calculator's metric instruments on top of them. Add new domain InitMetrics
// calls here as the project grows.
func initTelemetry(ctx context.Context, cfg config.OTLP) (observability.Shutdown, error) {
	shutdown, err := observability.InitTelemetry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := session.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
