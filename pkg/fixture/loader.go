package fixture

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/pldm-go/pldm-go/pkg/capability"
	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/pldm"
	"github.com/pldm-go/pldm-go/pkg/terminus"
)

// Parse parses a fixture from YAML bytes. Unknown top-level keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if !pldm.TID(f.TID).IsAssignable() {
		return nil, &LoadError{
			Message: fmt.Sprintf("tid must be between 1 and 254, got %d", f.TID),
		}
	}

	for i, p := range f.PDRs {
		set := 0
		if p.Hex != "" {
			set++
		}
		if p.SensorNames != nil {
			set++
		}
		if p.EntityNames != nil {
			set++
		}
		if p.Raw != nil {
			set++
		}
		if set != 1 {
			return nil, &LoadError{
				Line:    p.Line,
				Message: fmt.Sprintf("pdr %d: exactly one of hex, sensorNames, entityNames, raw is required", i),
			}
		}
	}

	return &f, nil
}

// Load loads a fixture from a file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	f, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	f.File = path
	return f, nil
}

// LoadDirectory loads all fixtures from a directory, ordered by file name.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	fixtures := make([]*Fixture, 0, len(names))
	for _, name := range names {
		f, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// TypeSet returns the supported types mask.
func (f *Fixture) TypeSet() (capability.TypeSet, error) {
	var s capability.TypeSet
	for _, name := range f.Types {
		t, err := pldm.LookupType(name)
		if err != nil {
			return 0, f.errorf(0, err, "types")
		}
		s = s.With(t)
	}
	return s, nil
}

// CommandSet returns the supported commands bitmap, sized to cover the
// highest type that has commands.
func (f *Fixture) CommandSet() (capability.CommandSet, error) {
	keys := make([]string, 0, len(f.Commands))
	for k := range f.Commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmds := capability.CommandSet{}
	for _, k := range keys {
		t, err := pldm.LookupType(k)
		if err != nil {
			return nil, f.errorf(0, err, "commands")
		}
		for _, c := range f.Commands[k] {
			cmds = cmds.Set(t, c)
		}
	}
	if len(cmds) > 0 && len(cmds)%capability.BytesPerType != 0 {
		cmds = append(cmds, make(capability.CommandSet, capability.BytesPerType-len(cmds)%capability.BytesPerType)...)
	}
	return cmds, nil
}

// Records encodes the PDRs in order.
func (f *Fixture) Records() ([][]byte, error) {
	b := pdr.NewBuilder()
	records := make([][]byte, 0, len(f.PDRs))

	for i, p := range f.PDRs {
		if p.Handle != nil {
			b.SetNextHandle(*p.Handle)
		}

		var raw []byte
		var err error
		switch {
		case p.Hex != "":
			raw, err = decodeHex(p.Hex)
		case p.SensorNames != nil:
			raw, err = b.SensorAuxiliaryNames(p.SensorNames)
		case p.EntityNames != nil:
			raw, err = b.EntityAuxiliaryNames(p.EntityNames)
		case p.Raw != nil:
			var payload []byte
			if payload, err = decodeHex(p.Raw.Payload); err == nil {
				raw, err = b.Raw(pdr.Type(p.Raw.Type), payload)
			}
		}
		if err != nil {
			return nil, f.errorf(p.Line, err, "pdr %d", i)
		}
		records = append(records, raw)
	}
	return records, nil
}

// Terminus builds a terminus with the fixture's capabilities and records.
// No decode pass is run.
func (f *Fixture) Terminus() (*terminus.Terminus, error) {
	types, err := f.TypeSet()
	if err != nil {
		return nil, err
	}
	cmds, err := f.CommandSet()
	if err != nil {
		return nil, err
	}
	records, err := f.Records()
	if err != nil {
		return nil, err
	}

	t := terminus.New(pldm.TID(f.TID), types)
	t.SetSupportedCommands(cmds)
	for _, raw := range records {
		t.AppendPDR(raw)
	}
	return t, nil
}

func (f *Fixture) errorf(line int, cause error, format string, args ...any) *LoadError {
	return &LoadError{
		File:    f.File,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// decodeHex decodes hex digits, ignoring whitespace.
func decodeHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return hex.DecodeString(clean)
}
