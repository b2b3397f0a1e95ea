package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pldm-go/pldm-go/pkg/inspect"
	"github.com/pldm-go/pldm-go/pkg/log"
)

// EventsOptions configures the events command.
type EventsOptions struct {
	Filter  log.Filter
	ShowRaw bool
}

// RunEvents prints the matching events of a log file, one per line.
func RunEvents(path string, opts EventsOptions, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, opts.Filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	f := inspect.NewFormatter()
	f.ShowRaw = opts.ShowRaw

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		fmt.Fprintln(w, f.FormatEvent(event))
	}
}

// ParseLayerFlag parses a layer flag value.
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "decoder":
		return log.LayerDecoder, nil
	case "capability":
		return log.LayerCapability, nil
	case "registry":
		return log.LayerRegistry, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be decoder, capability, or registry)", s)
	}
}

// ParseCategoryFlag parses a category flag value.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "record":
		return log.CategoryRecord, nil
	case "query":
		return log.CategoryQuery, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be record, query, state, or error)", s)
	}
}

// ParseOutcomeFlag parses a record outcome flag value.
func ParseOutcomeFlag(s string) (log.Outcome, error) {
	switch strings.ToLower(s) {
	case "decoded":
		return log.OutcomeDecoded, nil
	case "inert":
		return log.OutcomeInert, nil
	case "skipped":
		return log.OutcomeSkipped, nil
	default:
		return 0, fmt.Errorf("invalid outcome: %s (must be decoded, inert, or skipped)", s)
	}
}
