package observability

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"neon-calculator/internal/config"
)

// Shutdown flushes and stops whatever InitTelemetry started.
type Shutdown func(context.Context) error

// InitTelemetry starts the OTLP pipelines switched on in cfg. Disabled
// pipelines leave the global no-op providers in place. On error, pipelines
// already started are shut down before returning.
func InitTelemetry(ctx context.Context, cfg config.OTLP) (Shutdown, error) {
	var shutdowns []Shutdown

	shutdownAll := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	pipelines := []struct {
		name    string
		enabled bool
		init    func(context.Context) (func(context.Context) error, error)
	}{
		{name: "tracing", enabled: cfg.Traces, init: InitTracing},
		{name: "metrics", enabled: cfg.Metrics, init: InitMetrics},
		{name: "logging", enabled: cfg.Logs, init: InitLogging},
	}

	for _, p := range pipelines {
		if !p.enabled {
			continue
		}
		shutdown, err := p.init(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init %s: %w", p.name, err), shutdownAll(ctx))
		}
		shutdowns = append(shutdowns, shutdown)
		Logger.Info("otlp pipeline started", zap.String("pipeline", p.name))
	}

	return shutdownAll, nil
}
