package commands

import (
	"fmt"
	"io"

	"github.com/listenscope/listenscope-go/pkg/log"
)

// RunFilter copies matching events from path into a new trace at output
// and returns how many were written.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	if output == "" {
		return 0, fmt.Errorf("output path required")
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	writer, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	n := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			writer.Close()
			return n, fmt.Errorf("failed to read event: %w", err)
		}
		writer.Log(event)
		n++
	}

	if err := writer.Close(); err != nil {
		return n, fmt.Errorf("failed to close output file: %w", err)
	}
	if dropped := writer.Dropped(); dropped > 0 {
		return n - dropped, fmt.Errorf("%d events could not be written", dropped)
	}
	return n, nil
}
