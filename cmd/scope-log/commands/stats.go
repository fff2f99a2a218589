package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/listenscope/listenscope-go/pkg/log"
)

// Stats holds aggregate statistics about a trace.
type Stats struct {
	TotalEvents    int
	EventsByOp     map[log.Op]int
	EventsByReason map[log.Reason]int
	Owners         map[string]*OwnerStats
	Errors         int
	TimeRange      struct {
		Start time.Time
		End   time.Time
	}
}

// OwnerStats holds statistics for a single owner.
type OwnerStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Registers   int
	Deregisters int
	Errors      int
	Disposed    bool
}

// Outstanding returns the number of handlers registered and not yet
// removed. A disposed owner with outstanding handlers leaked them.
func (o *OwnerStats) Outstanding() int {
	return o.Registers - o.Deregisters
}

// CollectStats reads the whole trace and aggregates it.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByOp:     make(map[log.Op]int),
		EventsByReason: make(map[log.Reason]int),
		Owners:         make(map[string]*OwnerStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByOp[event.Op]++
	s.EventsByReason[event.Reason]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	owner, ok := s.Owners[event.OwnerID]
	if !ok {
		owner = &OwnerStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Owners[event.OwnerID] = owner
	}
	owner.Events++
	if event.Timestamp.After(owner.LastSeen) {
		owner.LastSeen = event.Timestamp
	}

	if event.Error != nil {
		s.Errors++
		owner.Errors++
		// Failed calls leave the target unchanged.
		return
	}

	switch event.Op {
	case log.OpRegister:
		owner.Registers++
	case log.OpDeregister:
		owner.Deregisters++
	case log.OpDispose:
		owner.Disposed = true
	}
}

// RunStats analyzes the trace and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Scope Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Op:")
	for _, op := range []log.Op{log.OpRegister, log.OpDeregister, log.OpRetain, log.OpSkip, log.OpDispose} {
		if count := stats.EventsByOp[op]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Reason:")
	for _, r := range []log.Reason{log.ReasonInitial, log.ReasonDepsChanged, log.ReasonAlways,
		log.ReasonUnchanged, log.ReasonConditional, log.ReasonDispose} {
		if count := stats.EventsByReason[r]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", r.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Owners: %d\n", len(stats.Owners))
	if len(stats.Owners) > 0 {
		ids := make([]string, 0, len(stats.Owners))
		for id := range stats.Owners {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := stats.Owners[ids[i]], stats.Owners[ids[j]]
			if a.FirstSeen.Equal(b.FirstSeen) {
				return ids[i] < ids[j]
			}
			return a.FirstSeen.Before(b.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, id := range ids {
			o := stats.Owners[id]
			label := shorten(id)
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(w, "  [%s] %d events, %d registered, %d removed\n",
				label, o.Events, o.Registers, o.Deregisters)
			if o.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", o.Errors)
			}
			if o.Disposed && o.Outstanding() > 0 {
				fmt.Fprintf(w, "           LEAKED: %d handler(s) outstanding after dispose\n", o.Outstanding())
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
