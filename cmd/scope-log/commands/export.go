package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/listenscope/listenscope-go/pkg/log"
)

// exportEvent is the JSON form of a trace event.
type exportEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	OwnerID     string    `json:"owner_id,omitempty"`
	EventName   string    `json:"event_name,omitempty"`
	Op          string    `json:"op"`
	Reason      string    `json:"reason"`
	Token       string    `json:"token,omitempty"`
	Deps        []string  `json:"deps,omitempty"`
	Error       string    `json:"error,omitempty"`
	ErrorSource string    `json:"error_source,omitempty"`
}

func toExportEvent(e log.Event) exportEvent {
	out := exportEvent{
		Timestamp: e.Timestamp,
		OwnerID:   e.OwnerID,
		EventName: e.EventName,
		Op:        e.Op.String(),
		Reason:    e.Reason.String(),
		Token:     e.Token,
		Deps:      e.Deps,
	}
	if e.Error != nil {
		out.Error = e.Error.Message
		out.ErrorSource = e.Error.Source
	}
	return out
}

// RunExport writes matching events as JSON lines or CSV. An empty output
// path writes to w.
func RunExport(path, format, output string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toExportEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

var csvHeader = []string{"timestamp", "owner_id", "event_name", "op", "reason", "token", "deps", "error"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		e := toExportEvent(event)
		row := []string{
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			e.OwnerID,
			e.EventName,
			e.Op,
			e.Reason,
			e.Token,
			strings.Join(e.Deps, ";"),
			e.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
