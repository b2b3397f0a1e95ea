package fixture

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pldm-go/pldm-go/pkg/pdr"
)

// Fixture describes one terminus.
type Fixture struct {
	// TID is the terminus ID (1-254).
	TID uint8 `yaml:"tid"`

	// Description is free text shown by tools.
	Description string `yaml:"description,omitempty"`

	// Types lists the supported PLDM types by name or number.
	Types []string `yaml:"types,omitempty"`

	// Commands maps a type (name or number) to its supported commands.
	Commands map[string][]uint8 `yaml:"commands,omitempty"`

	// PDRs are the records in discovery order.
	PDRs []PDR `yaml:"pdrs,omitempty"`

	// File is the path the fixture was loaded from.
	File string `yaml:"-"`
}

// PDR is one record. Exactly one of Hex, SensorNames, EntityNames or Raw is
// set.
type PDR struct {
	// Handle overrides the record handle of encoded records.
	Handle *uint32 `yaml:"handle,omitempty"`

	// Hex is a complete raw record, header included. Whitespace is ignored.
	Hex string `yaml:"hex,omitempty"`

	SensorNames *pdr.SensorAuxiliaryNames `yaml:"sensorNames,omitempty"`
	EntityNames *pdr.EntityAuxiliaryNames `yaml:"entityNames,omitempty"`

	// Raw wraps a hex payload in a header of the given type.
	Raw *RawPDR `yaml:"raw,omitempty"`

	// Line is the source line of the entry.
	Line int `yaml:"-"`
}

// RawPDR is a payload of an arbitrary PDR type.
type RawPDR struct {
	Type    uint8  `yaml:"type"`
	Payload string `yaml:"payload"`
}

// UnmarshalYAML records the source line of the entry.
func (p *PDR) UnmarshalYAML(node *yaml.Node) error {
	type plain PDR
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = PDR(v)
	p.Line = node.Line
	return nil
}

// LoadError provides details about a fixture loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	loc := e.File
	if loc == "" {
		loc = "fixture"
	}
	if e.Line > 0 {
		loc += ":" + strconv.Itoa(e.Line)
	}
	return loc + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
