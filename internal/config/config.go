// Package config loads the calculator's settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable read by Load, e.g. NEONCALC_HTTP_ADDR.
const Prefix = "NEONCALC"

// HTTP configures the API server.
type HTTP struct {
	Addr            string        `default:":8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"10s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"5s"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `default:"info"`
	Output string `default:"stderr"` // zap output path: stderr, stdout or a file
}

// OTLP switches the OpenTelemetry exporters on. Endpoints come from the
// standard OTEL_EXPORTER_OTLP_* variables.
type OTLP struct {
	Traces  bool `default:"false"`
	Metrics bool `default:"false"`
	Logs    bool `default:"false"`
}

// Sessions bounds the in-memory session store.
type Sessions struct {
	Limit int `default:"1000"` // 0 means unbounded
}

type Config struct {
	HTTP     HTTP
	Log      Log
	OTLP     OTLP
	Sessions Sessions
}

// Load fills a Config from NEONCALC_* variables, applying defaults for the
// ones that are unset.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
