// Command scope-demo is an interactive playground for listener scopes.
//
// It hosts three example widgets on a simulated window: a click counter
// that listens only while enabled, a tracker that binds once per mount,
// and a listener that rebinds on every render. Commands mount, render and
// unmount the widgets and dispatch clicks so the effect of each dependency
// snapshot can be watched.
//
// Usage:
//
//	scope-demo [flags]
//
// Flags:
//
//	-trace string       File path for the scope decision trace (CBOR format)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-enabled            Start the click counter enabled (default true)
//	-exec string        Run semicolon-separated commands and exit
//
// Environment: SCOPE_DEMO_TRACE, SCOPE_DEMO_LOG_LEVEL, SCOPE_DEMO_ENABLED.
//
// Examples:
//
//	# Interactive session with a trace for scope-log
//	scope-demo -trace demo.sclog
//
//	# Scripted run
//	scope-demo -exec "mount; click; toggle; click; status"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/listenscope/listenscope-go/cmd/scope-demo/interactive"
	scopelog "github.com/listenscope/listenscope-go/pkg/log"
)

// Config holds scope-demo configuration.
type Config struct {
	Trace    string `env:"SCOPE_DEMO_TRACE"`
	LogLevel string `env:"SCOPE_DEMO_LOG_LEVEL" envDefault:"info"`
	Enabled  bool   `env:"SCOPE_DEMO_ENABLED"   envDefault:"true"`
	Exec     string
}

// ParseConfig reads the environment, then applies flags from args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Trace, "trace", cfg.Trace, "file path for the scope decision trace (CBOR format)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Enabled, "enabled", cfg.Enabled, "start the click counter enabled")
	fs.StringVar(&cfg.Exec, "exec", "", "run semicolon-separated commands and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log.SetFlags(log.Ltime)
	if cfg.LogLevel == "debug" {
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	demoConfig, closeTrace, err := buildDemoConfig(cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeTrace()

	if cfg.Exec != "" {
		if err := runScript(demoConfig, cfg.Exec, os.Stdout); err != nil {
			log.Printf("Error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal: %v", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	demo := interactive.New(demoConfig, os.Stdout)
	if err := demo.Run(ctx, cancel); err != nil {
		log.Printf("Error: %v", err)
	}
}

// buildDemoConfig wires logging and the optional trace file. The returned
// func closes the trace.
func buildDemoConfig(cfg Config, logOut io.Writer) (interactive.Config, func(), error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return interactive.Config{}, nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	dc := interactive.Config{
		Logger:       logger,
		StartEnabled: cfg.Enabled,
	}
	closeTrace := func() {}

	var file *scopelog.FileLogger
	if cfg.Trace != "" {
		file, err = scopelog.NewFileLogger(cfg.Trace)
		if err != nil {
			return interactive.Config{}, nil, fmt.Errorf("open trace: %w", err)
		}
		closeTrace = func() {
			if err := file.Close(); err != nil {
				log.Printf("Error closing trace: %v", err)
			}
		}
		log.Printf("Tracing scope decisions to %s", cfg.Trace)
	}

	// Decisions are echoed to the log at debug level.
	var slogTrace scopelog.Logger
	if level <= slog.LevelDebug {
		slogTrace = scopelog.NewSlogAdapter(logger)
	}
	// Skip nil loggers explicitly to avoid a typed-nil interface.
	var sinks []scopelog.Logger
	if file != nil {
		sinks = append(sinks, file)
	}
	if slogTrace != nil {
		sinks = append(sinks, slogTrace)
	}
	if len(sinks) > 0 {
		dc.TraceLogger = scopelog.NewMultiLogger(sinks...)
	}
	return dc, closeTrace, nil
}

// runScript executes semicolon-separated commands, then releases every
// widget.
func runScript(config interactive.Config, script string, out io.Writer) error {
	demo := interactive.New(config, out)
	for _, line := range strings.Split(script, ";") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(out, "scope> %s\n", strings.TrimSpace(line))
		if !demo.Execute(line) {
			break
		}
	}
	return demo.Close()
}
