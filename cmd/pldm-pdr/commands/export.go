package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pldm-go/pldm-go/pkg/terminus"
)

// ExportOptions configures the export command.
type ExportOptions struct {
	// Output is the destination file (required).
	Output string

	// Format is "cbor" or "json".
	Format string

	// TID selects the terminus when several fixtures are given.
	TID uint8

	DecodeOptions
}

// RunExport decodes the fixtures and writes the selected terminus snapshot.
func RunExport(ctx context.Context, paths []string, opts ExportOptions) error {
	if opts.Output == "" {
		return fmt.Errorf("output file required")
	}

	reg, err := LoadRegistry(paths, opts.DecodeOptions)
	if err != nil {
		return err
	}
	if _, err := reg.ParseAll(ctx, opts.Jobs); err != nil {
		return err
	}
	t, err := findTerminus(reg, opts.TID)
	if err != nil {
		return err
	}

	var data []byte
	switch opts.Format {
	case "", "cbor":
		data, err = terminus.MarshalInfo(t.Info())
	case "json":
		data, err = json.MarshalIndent(t.Info(), "", "  ")
	default:
		return fmt.Errorf("unsupported format: %s (must be cbor or json)", opts.Format)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return os.WriteFile(opts.Output, data, 0644)
}

// ReadSnapshot reads a CBOR snapshot written by RunExport.
func ReadSnapshot(path string) (*terminus.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return terminus.UnmarshalInfo(data)
}
