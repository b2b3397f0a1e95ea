package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/terminus"
)

// Inspector errors.
var (
	ErrSensorNotFound = errors.New("sensor not found")
	ErrNoName         = errors.New("terminus has no name")
	ErrPDRNotFound    = errors.New("pdr not found")
)

// Inspector answers queries about a terminus.
type Inspector struct {
	terminus  *terminus.Terminus
	formatter *Formatter
}

// NewInspector creates a new Inspector for the given terminus.
// A nil formatter uses NewFormatter defaults.
func NewInspector(t *terminus.Terminus, f *Formatter) *Inspector {
	if f == nil {
		f = NewFormatter()
	}
	return &Inspector{terminus: t, formatter: f}
}

// Terminus returns the inspected terminus.
func (i *Inspector) Terminus() *terminus.Terminus {
	return i.terminus
}

// Formatter returns the formatter used for output.
func (i *Inspector) Formatter() *Formatter {
	return i.formatter
}

// Evaluate runs a query and returns its formatted answer. Capability queries
// always succeed; a negative answer carries the reason. Lookups of absent
// sensors, names or records return an error.
func (i *Inspector) Evaluate(q *Query) (string, error) {
	t := i.terminus

	switch q.Kind {
	case QueryType:
		if t.SupportsType(q.Type) {
			return fmt.Sprintf("type %s: supported", FormatType(q.Type)), nil
		}
		return fmt.Sprintf("type %s: not supported", FormatType(q.Type)), nil

	case QueryCommand:
		if err := t.CheckCommand(q.Type, q.Command); err != nil {
			return fmt.Sprintf("type %s command 0x%02x: not supported (%v)", FormatType(q.Type), q.Command, err), nil
		}
		return fmt.Sprintf("type %s command 0x%02x: supported", FormatType(q.Type), q.Command), nil

	case QuerySensor:
		s := t.SensorAuxiliaryNames(q.SensorID)
		if s == nil {
			return "", fmt.Errorf("%w: %d", ErrSensorNotFound, q.SensorID)
		}
		return strings.TrimSuffix(i.formatter.FormatSensor(s), "\n"), nil

	case QueryName:
		name, ok := t.Name()
		if !ok {
			return "", ErrNoName
		}
		return fmt.Sprintf("%q", name), nil

	case QueryPDR:
		pdrs := t.PDRs()
		if q.Index < 0 || q.Index >= len(pdrs) {
			return "", fmt.Errorf("%w: index %d of %d", ErrPDRNotFound, q.Index, len(pdrs))
		}
		return i.describePDR(q.Index, pdrs[q.Index]), nil

	case QueryEntities:
		entities := t.EntityAuxiliaryNames()
		if len(entities) == 0 {
			return "(no entity names)", nil
		}
		var sb strings.Builder
		for _, e := range entities {
			sb.WriteString(i.formatter.FormatEntityNames(e))
		}
		return strings.TrimSuffix(sb.String(), "\n"), nil

	default:
		return "", fmt.Errorf("%w: kind %d", ErrInvalidQuery, q.Kind)
	}
}

// EvaluateString parses and evaluates a query.
func (i *Inspector) EvaluateString(input string) (string, error) {
	q, err := ParseQuery(input)
	if err != nil {
		return "", err
	}
	return i.Evaluate(q)
}

// describePDR decodes one record on its own and describes it.
func (i *Inspector) describePDR(index int, raw []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pdr %d (%d bytes)\n", index, len(raw))

	rec, err := pdr.Decode(raw)
	if err != nil {
		sb.WriteString(i.formatter.Indent(1, "error: "+err.Error()+"\n"))
	} else {
		h := rec.Header()
		sb.WriteString(i.formatter.Indent(1, fmt.Sprintf("handle=%d version=%d type=%s change=%d length=%d\n",
			h.RecordHandle, h.Version, h.Type, h.RecordChangeNumber, h.DataLength)))
		switch r := rec.(type) {
		case *pdr.SensorAuxiliaryNames:
			i.formatter.writeSensor(&sb, 1, r)
		case *pdr.EntityAuxiliaryNames:
			sb.WriteString(i.formatter.Indent(1, i.formatter.FormatEntityNames(r)))
		}
	}
	for _, line := range strings.Split(FormatHex(raw), "\n") {
		sb.WriteString(i.formatter.Indent(1, line+"\n"))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
