// Package commands implements the pldm-pdr CLI commands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/pldm-go/pldm-go/pkg/fixture"
	"github.com/pldm-go/pldm-go/pkg/inspect"
	"github.com/pldm-go/pldm-go/pkg/log"
	"github.com/pldm-go/pldm-go/pkg/pldm"
	"github.com/pldm-go/pldm-go/pkg/terminus"
)

// DecodeOptions configures the decode command.
type DecodeOptions struct {
	// Format is "text" or "json".
	Format string

	// ShowRaw includes hex dumps of skipped records.
	ShowRaw bool

	// Jobs limits concurrent decode passes (0 means unlimited).
	Jobs int

	// ProtocolLogger receives decode events (optional).
	ProtocolLogger log.Logger

	// Logger receives operational logs (optional).
	Logger *slog.Logger
}

// DecodeResult is the outcome of decoding one fixture.
type DecodeResult struct {
	Terminus *terminus.Terminus
	Report   *terminus.ParseReport
}

// skipJSON is the JSON form of a skipped record.
type skipJSON struct {
	Index  int    `json:"index"`
	Handle uint32 `json:"handle"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type reportJSON struct {
	*terminus.ParseReport
	Skipped []skipJSON `json:"skipped"`
}

type decodeJSON struct {
	Terminus *terminus.Info `json:"terminus"`
	Report   reportJSON     `json:"report"`
}

// LoadRegistry loads fixtures into a registry. Each fixture becomes one
// terminus; TIDs must be unique.
func LoadRegistry(paths []string, opts DecodeOptions) (*terminus.Registry, error) {
	reg := terminus.NewRegistry()
	reg.SetLogger(opts.Logger)
	reg.SetProtocolLogger(opts.ProtocolLogger)

	for _, path := range paths {
		f, err := fixture.Load(path)
		if err != nil {
			return nil, err
		}
		t, err := f.Terminus()
		if err != nil {
			return nil, err
		}
		if err := reg.Add(t); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return reg, nil
}

// Decode loads the fixtures and runs every terminus' decode pass.
// Results are ordered by TID.
func Decode(ctx context.Context, paths []string, opts DecodeOptions) ([]DecodeResult, error) {
	reg, err := LoadRegistry(paths, opts)
	if err != nil {
		return nil, err
	}

	reports, err := reg.ParseAll(ctx, opts.Jobs)
	if err != nil {
		return nil, err
	}

	results := make([]DecodeResult, 0, reg.Len())
	for _, t := range reg.Termini() {
		results = append(results, DecodeResult{Terminus: t, Report: reports[t.TID()]})
	}
	return results, nil
}

// RunDecode decodes the fixtures and writes the termini and reports to w.
func RunDecode(ctx context.Context, paths []string, opts DecodeOptions, w io.Writer) error {
	if opts.Format != "" && opts.Format != "text" && opts.Format != "json" {
		return fmt.Errorf("unsupported format: %s (must be text or json)", opts.Format)
	}

	results, err := Decode(ctx, paths, opts)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, r := range results {
			if err := enc.Encode(toDecodeJSON(r)); err != nil {
				return err
			}
		}
		return nil
	}

	f := inspect.NewFormatter()
	f.ShowRaw = opts.ShowRaw
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, f.FormatTerminus(r.Terminus.Info()))
		fmt.Fprint(w, f.FormatReport(r.Report, r.Terminus.PDRs()))
	}
	return nil
}

func toDecodeJSON(r DecodeResult) decodeJSON {
	out := decodeJSON{
		Terminus: r.Terminus.Info(),
		Report:   reportJSON{ParseReport: r.Report, Skipped: []skipJSON{}},
	}
	for _, re := range r.Report.Skipped {
		out.Report.Skipped = append(out.Report.Skipped, skipJSON{
			Index:  re.Index,
			Handle: re.Handle,
			Type:   re.Type.String(),
			Reason: re.Err.Error(),
		})
	}
	return out
}

// findTerminus returns the terminus with the given TID, or the only one when
// tid is zero.
func findTerminus(reg *terminus.Registry, tid uint8) (*terminus.Terminus, error) {
	if tid != 0 {
		return reg.Get(pldm.TID(tid))
	}
	termini := reg.Termini()
	if len(termini) != 1 {
		return nil, fmt.Errorf("%d termini loaded, select one with -tid", len(termini))
	}
	return termini[0], nil
}
