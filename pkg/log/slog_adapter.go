package log

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful during development to watch registrations in the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates an adapter that logs at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter logging at level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event. Events carrying an error are logged at Warn.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("event", event.EventName),
		slog.String("op", event.Op.String()),
		slog.String("reason", event.Reason.String()),
	}
	if event.OwnerID != "" {
		attrs = append(attrs, slog.String("owner", event.OwnerID))
	}
	if event.Token != "" {
		attrs = append(attrs, slog.String("token", event.Token))
	}
	if event.Deps != nil {
		attrs = append(attrs, slog.String("deps", "["+strings.Join(event.Deps, ", ")+"]"))
	}

	level := a.level
	if event.Error != nil {
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error", event.Error.Message),
			slog.String("error_source", event.Error.Source),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "scope", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
