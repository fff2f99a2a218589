package scope

import (
	"log/slog"

	"github.com/listenscope/listenscope-go/pkg/log"
)

// Config holds scope and registry configuration.
type Config struct {
	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// TraceLogger receives one event per scope decision. Nil disables tracing.
	TraceLogger log.Logger
}

// DefaultConfig returns a configuration with logging and tracing disabled.
func DefaultConfig() Config {
	return Config{
		TraceLogger: log.NoopLogger{},
	}
}
