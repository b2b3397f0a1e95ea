package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/pldm-go/pldm-go/pkg/inspect"
	"github.com/pldm-go/pldm-go/pkg/terminus"
)

// QueryOptions configures the query command.
type QueryOptions struct {
	// TID selects the terminus when several fixtures are given.
	TID uint8

	DecodeOptions
}

// OpenTerminus loads the fixtures, selects one terminus by TID (or the only
// one when tid is zero) and runs its decode pass.
func OpenTerminus(paths []string, tid uint8, opts DecodeOptions) (*terminus.Terminus, error) {
	reg, err := LoadRegistry(paths, opts)
	if err != nil {
		return nil, err
	}
	t, err := findTerminus(reg, tid)
	if err != nil {
		return nil, err
	}
	t.ParsePDRs()
	return t, nil
}

// RunQuery decodes the fixtures and evaluates each query against the
// selected terminus. Absent values are reported inline; the first query that
// fails to parse stops the run.
func RunQuery(paths []string, queries []string, opts QueryOptions, w io.Writer) error {
	t, err := OpenTerminus(paths, opts.TID, opts.DecodeOptions)
	if err != nil {
		return err
	}

	insp := inspect.NewInspector(t, nil)
	for _, input := range queries {
		q, err := inspect.ParseQuery(input)
		if err != nil {
			return fmt.Errorf("query %q: %w", input, err)
		}
		out, err := insp.Evaluate(q)
		switch {
		case err == nil:
			fmt.Fprintf(w, "%s: %s\n", q.Raw, out)
		case errors.Is(err, inspect.ErrSensorNotFound),
			errors.Is(err, inspect.ErrNoName),
			errors.Is(err, inspect.ErrPDRNotFound):
			fmt.Fprintf(w, "%s: absent (%v)\n", q.Raw, err)
		default:
			return err
		}
	}
	return nil
}
