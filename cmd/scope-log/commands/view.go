// Package commands implements the scope-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/listenscope/listenscope-go/pkg/log"
)

// RunView prints every matching event in human-readable form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one event as a header line plus optional details.
//
//	2026-01-28T10:15:32.123456Z [owner:1a2b3c4d] click REGISTER (DEPS_CHANGED)
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	owner := shorten(event.OwnerID)
	if owner == "" {
		owner = "-"
	}
	name := event.EventName
	if name == "" {
		name = "-"
	}

	fmt.Fprintf(w, "%s [owner:%s] %s %s (%s)\n", ts, owner, name, event.Op, event.Reason)

	if event.Token != "" {
		fmt.Fprintf(w, "  Token: %s\n", shorten(event.Token))
	}
	if event.Deps != nil {
		fmt.Fprintf(w, "  Deps:  [%s]\n", strings.Join(event.Deps, ", "))
	}
	if event.Error != nil {
		if event.Error.Source != "" {
			fmt.Fprintf(w, "  Error (%s): %s\n", event.Error.Source, event.Error.Message)
		} else {
			fmt.Fprintf(w, "  Error: %s\n", event.Error.Message)
		}
	}
}

// shorten returns the first 8 characters of an identifier.
func shorten(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FilterOptions holds the textual filter criteria shared by the view,
// export and filter commands.
type FilterOptions struct {
	Owner      string
	Event      string
	Op         string
	ErrorsOnly bool
	TimeStart  string
	TimeEnd    string
}

// BuildFilter converts options into a trace filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		OwnerID:    opts.Owner,
		EventName:  opts.Event,
		ErrorsOnly: opts.ErrorsOnly,
	}

	if opts.Op != "" {
		op, ok := log.ParseOp(strings.ToUpper(opts.Op))
		if !ok {
			return log.Filter{}, fmt.Errorf("invalid op: %s (valid: register, deregister, retain, skip, dispose)", opts.Op)
		}
		filter.Op = &op
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start: %w", err)
		}
		filter.TimeStart = &t
	}
	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}
