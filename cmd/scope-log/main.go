// Command scope-log views and analyzes scope decision traces.
//
// Traces are written by scope-test and scope-demo when run with -trace.
//
// Usage:
//
//	scope-log <command> [flags] <file.sclog>
//
// Commands:
//
//	view     View trace in human-readable format
//	export   Export trace to JSON lines or CSV
//	filter   Filter trace and write to new file
//	stats    Show statistics and leaked handlers
//
// Examples:
//
//	# View all decisions of one owner
//	scope-log view -owner 1a2b3c4d-... demo.sclog
//
//	# Show only failed operations
//	scope-log view -errors demo.sclog
//
//	# Export deregistrations to CSV
//	scope-log export -format csv -op deregister demo.sclog
//
//	# Show statistics
//	scope-log stats demo.sclog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/listenscope/listenscope-go/cmd/scope-log/commands"
)

const usage = `scope-log - Scope Trace Analyzer

Usage:
  scope-log <command> [flags] <file.sclog>

Commands:
  view     View trace in human-readable format
  export   Export trace to JSON lines or CSV
  filter   Filter trace and write to new file
  stats    Show statistics and leaked handlers

Use "scope-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// addFilterFlags registers the shared filter flags on fs.
func addFilterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.Owner, "owner", "", "Filter by owner ID")
	fs.StringVar(&opts.Event, "event", "", "Filter by event name")
	fs.StringVar(&opts.Op, "op", "", "Filter by op (register, deregister, retain, skip, dispose)")
	fs.BoolVar(&opts.ErrorsOnly, "errors", false, "Show only failed operations")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return opts
}

func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "scope-log %s - %s\n\nUsage:\n  scope-log %s [flags] <file.sclog>\n\nFlags:\n",
			name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses args and returns the trace path, exiting on error.
func parseArgs(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View trace in human-readable format")
	opts := addFilterFlags(fs)
	path := parseArgs(fs, args)

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export trace to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	opts := addFilterFlags(fs)
	path := parseArgs(fs, args)

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fail(err)
	}
	if err := commands.RunExport(path, *format, *output, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter trace and write to new file")
	output := fs.String("o", "", "Output file (required)")
	opts := addFilterFlags(fs)
	path := parseArgs(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fail(err)
	}
	n, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics and leaked handlers")
	path := parseArgs(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
