// Package inspect formats and queries termini for display.
//
// The inspect package offers a unified interface for:
//   - Parsing query expressions (e.g., "cmd/platform/0x11", "sensor/3")
//   - Evaluating queries against a terminus
//   - Formatting termini, decode reports and event logs for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pldm-go/pldm-go/pkg/pldm"
)

// Query errors.
var (
	ErrEmptyQuery    = errors.New("empty query")
	ErrInvalidQuery  = errors.New("invalid query format")
	ErrInvalidNumber = errors.New("invalid numeric value in query")
)

// QueryKind selects what a query asks for.
type QueryKind uint8

const (
	// QueryType asks whether a PLDM type is supported.
	QueryType QueryKind = iota
	// QueryCommand asks whether a command of a type is supported.
	QueryCommand
	// QuerySensor asks for the names of a sensor.
	QuerySensor
	// QueryName asks for the terminus name.
	QueryName
	// QueryPDR asks for one raw record by index.
	QueryPDR
	// QueryEntities lists the decoded entity names.
	QueryEntities
)

// Query is a parsed query expression.
type Query struct {
	Kind QueryKind

	// Type is set for QueryType and QueryCommand.
	Type pldm.Type

	// Command is set for QueryCommand.
	Command uint8

	// SensorID is set for QuerySensor.
	SensorID uint16

	// Index is set for QueryPDR.
	Index int

	// Raw stores the original input string.
	Raw string
}

// ParseQuery parses a query string.
//
// Supported formats:
//   - "type/<type>" - type support
//   - "cmd/<type>/<command>" - command support
//   - "sensor/<id>" - sensor names
//   - "pdr/<index>" - raw record
//   - "name" - terminus name
//   - "entities" - entity names
//
// Types are names or numbers; numbers can be decimal or hex (0x prefix).
func ParseQuery(input string) (*Query, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyQuery
	}
	if strings.HasPrefix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidQuery
	}

	parts := strings.Split(input, "/")
	q := &Query{Raw: input}

	switch strings.ToLower(parts[0]) {
	case "type":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: want type/<type>", ErrInvalidQuery)
		}
		t, err := pldm.LookupType(parts[1])
		if err != nil {
			return nil, fmt.Errorf("type: %w", err)
		}
		q.Kind = QueryType
		q.Type = t

	case "cmd":
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: want cmd/<type>/<command>", ErrInvalidQuery)
		}
		t, err := pldm.LookupType(parts[1])
		if err != nil {
			return nil, fmt.Errorf("type: %w", err)
		}
		c, err := parseUint(parts[2], 8)
		if err != nil {
			return nil, fmt.Errorf("command: %w", err)
		}
		q.Kind = QueryCommand
		q.Type = t
		q.Command = uint8(c)

	case "sensor":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: want sensor/<id>", ErrInvalidQuery)
		}
		id, err := parseUint(parts[1], 16)
		if err != nil {
			return nil, fmt.Errorf("sensor: %w", err)
		}
		q.Kind = QuerySensor
		q.SensorID = uint16(id)

	case "pdr":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: want pdr/<index>", ErrInvalidQuery)
		}
		idx, err := parseUint(parts[1], 31)
		if err != nil {
			return nil, fmt.Errorf("pdr: %w", err)
		}
		q.Kind = QueryPDR
		q.Index = int(idx)

	case "name", "entities":
		if len(parts) != 1 {
			return nil, ErrInvalidQuery
		}
		q.Kind = QueryName
		if strings.EqualFold(parts[0], "entities") {
			q.Kind = QueryEntities
		}

	default:
		return nil, fmt.Errorf("%w: unknown query %q", ErrInvalidQuery, parts[0])
	}

	return q, nil
}

// String returns the query in canonical form.
func (q *Query) String() string {
	switch q.Kind {
	case QueryType:
		return "type/" + strconv.Itoa(int(q.Type))
	case QueryCommand:
		return fmt.Sprintf("cmd/%d/0x%02x", q.Type, q.Command)
	case QuerySensor:
		return "sensor/" + strconv.Itoa(int(q.SensorID))
	case QueryPDR:
		return "pdr/" + strconv.Itoa(q.Index)
	case QueryEntities:
		return "entities"
	default:
		return "name"
	}
}

// parseUint parses a decimal or 0x-prefixed hex number of the given bit size.
func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}
