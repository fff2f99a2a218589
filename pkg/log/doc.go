// Package log provides structured lifecycle tracing for listener scopes.
//
// Every decision a scope makes (register, deregister, retain, skip,
// dispose) can be captured as an Event. This is separate from operational
// logging (slog): the trace is a complete machine-readable record of
// registration state changes, useful for proving that no binding leaked.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.TraceLogger = log.NewSlogAdapter(slog.Default())
//
//	// For analysis: write to binary file
//	cfg.TraceLogger, _ = log.NewFileLogger("/tmp/scope.sclog")
//
//	// Both: use MultiLogger
//	cfg.TraceLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Trace files are CBOR sequences with the .sclog extension. The scope-log
// CLI tool provides viewing and statistics.
package log
