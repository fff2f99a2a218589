// Command scope-test runs YAML listener-scope scenarios against an
// in-memory event source and reports the outcome.
//
// Usage:
//
//	scope-test [flags] [pattern]
//
// Flags:
//
//	-dir string     Scenario directory (default "./testdata/scenarios")
//	-verbose        Show per-step details
//	-json           Output results as JSON
//	-junit          Output results as JUnit XML
//	-trace string   File path for the scope decision trace (CBOR format)
//
// Every flag has an environment variable counterpart (SCOPE_TEST_DIR,
// SCOPE_TEST_VERBOSE, SCOPE_TEST_FORMAT, SCOPE_TEST_TRACE). Flags win.
//
// The pattern selects scenarios whose ID contains it or that carry it as
// a tag.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/listenscope/listenscope-go/internal/testharness/loader"
	"github.com/listenscope/listenscope-go/internal/testharness/reporter"
	"github.com/listenscope/listenscope-go/internal/testharness/runner"
	scopelog "github.com/listenscope/listenscope-go/pkg/log"
)

// Config holds scope-test configuration.
type Config struct {
	Dir     string `env:"SCOPE_TEST_DIR"     envDefault:"./testdata/scenarios"`
	Verbose bool   `env:"SCOPE_TEST_VERBOSE"`
	Format  string `env:"SCOPE_TEST_FORMAT"  envDefault:"text"`
	Trace   string `env:"SCOPE_TEST_TRACE"`
	Pattern string `env:"SCOPE_TEST_PATTERN"`
}

// ParseConfig reads the environment, then applies flags from args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	var jsonOut, junitOut bool
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "scenario directory")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "show per-step details")
	fs.BoolVar(&jsonOut, "json", false, "output results as JSON")
	fs.BoolVar(&junitOut, "junit", false, "output results as JUnit XML")
	fs.StringVar(&cfg.Trace, "trace", cfg.Trace, "file path for the scope decision trace (CBOR format)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch {
	case jsonOut:
		cfg.Format = "json"
	case junitOut:
		cfg.Format = "junit"
	}
	switch cfg.Format {
	case "text", "json", "junit":
	default:
		return Config{}, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	if fs.NArg() > 0 {
		cfg.Pattern = fs.Arg(0)
	}
	return cfg, nil
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log.SetFlags(log.Ltime)
	if cfg.Format != "text" {
		log.SetOutput(io.Discard)
	}

	passed, err := run(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !passed {
		os.Exit(1)
	}
}

// run loads, filters and executes scenarios, then writes the report to
// out. It reports whether every scenario passed.
func run(cfg Config, out io.Writer) (bool, error) {
	scenarios, err := loader.LoadDirectory(cfg.Dir)
	if err != nil {
		return false, err
	}
	scenarios = loader.Filter(scenarios, cfg.Pattern)
	if len(scenarios) == 0 {
		return false, fmt.Errorf("no scenarios in %s match %q", cfg.Dir, cfg.Pattern)
	}
	log.Printf("Loaded %d scenario(s) from %s", len(scenarios), cfg.Dir)

	rc := runner.Config{}
	if cfg.Verbose {
		rc.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if cfg.Trace != "" {
		trace, err := scopelog.NewFileLogger(cfg.Trace)
		if err != nil {
			return false, fmt.Errorf("open trace: %w", err)
		}
		defer trace.Close()
		rc.TraceLogger = trace
		log.Printf("Tracing scope decisions to %s", cfg.Trace)
	}

	suite := runner.New(rc).RunSuite(cfg.Dir, scenarios)
	newReporter(cfg, out).ReportSuite(suite)
	return suite.FailCount == 0, nil
}

func newReporter(cfg Config, out io.Writer) reporter.Reporter {
	switch cfg.Format {
	case "json":
		return reporter.NewJSONReporter(out, true)
	case "junit":
		return reporter.NewJUnitReporter(out)
	default:
		return reporter.NewTextReporter(out, cfg.Verbose)
	}
}
