package log

import "time"

// Event represents a decode or query event for one terminus.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// PassID identifies the decode pass (UUID); empty for queries.
	PassID string `cbor:"2,keyasint,omitempty"`

	// TID is the terminus the event belongs to.
	TID uint8 `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Record      *RecordEvent      `cbor:"10,keyasint,omitempty"`
	Query       *QueryEvent       `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerDecoder is the PDR decoder.
	LayerDecoder Layer = 0
	// LayerCapability is the capability bitmap.
	LayerCapability Layer = 1
	// LayerRegistry is the terminus registry and decode pass driver.
	LayerRegistry Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerDecoder:
		return "DECODER"
	case LayerCapability:
		return "CAPABILITY"
	case LayerRegistry:
		return "REGISTRY"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRecord indicates a per-record decode outcome.
	CategoryRecord Category = 0
	// CategoryQuery indicates a capability query.
	CategoryQuery Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRecord:
		return "RECORD"
	case CategoryQuery:
		return "QUERY"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Outcome is what the decode pass did with a record.
type Outcome uint8

const (
	// OutcomeDecoded indicates the record was decoded and cached.
	OutcomeDecoded Outcome = 0
	// OutcomeInert indicates a valid record of a type that is not cached.
	OutcomeInert Outcome = 1
	// OutcomeSkipped indicates a malformed record that was discarded.
	OutcomeSkipped Outcome = 2
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDecoded:
		return "DECODED"
	case OutcomeInert:
		return "INERT"
	case OutcomeSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// MaxLogRecordDataSize is the maximum raw record size included in an event.
// Larger records are truncated.
const MaxLogRecordDataSize = 512

// RecordEvent captures the outcome of decoding one PDR.
type RecordEvent struct {
	// Index is the record's position in the terminus' record set.
	Index int `cbor:"1,keyasint"`

	// Handle is the record handle (0 if the header was unreadable).
	Handle uint32 `cbor:"2,keyasint"`

	// Type is the PDR type (0 if the header was unreadable).
	Type uint8 `cbor:"3,keyasint"`

	// Size is the raw record size in bytes.
	Size int `cbor:"4,keyasint"`

	// Outcome is what the decode pass did with the record.
	Outcome Outcome `cbor:"5,keyasint"`

	// Reason explains a skipped record.
	Reason string `cbor:"6,keyasint,omitempty"`

	// Data is the raw record for skipped records (may be truncated).
	Data []byte `cbor:"7,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"8,keyasint,omitempty"`
}

// QueryEvent captures a capability query and its answer.
type QueryEvent struct {
	// Type is the queried PLDM type.
	Type uint8 `cbor:"1,keyasint"`

	// Command is the queried command; nil for type-only queries.
	Command *uint8 `cbor:"2,keyasint,omitempty"`

	// Supported is the answer.
	Supported bool `cbor:"3,keyasint"`

	// Reason explains a negative answer.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures decode pass and terminus lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityPass indicates a decode pass state change.
	StateEntityPass StateEntity = 0
	// StateEntityTerminus indicates a terminus registry change.
	StateEntityTerminus StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityPass:
		return "PASS"
	case StateEntityTerminus:
		return "TERMINUS"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors that are not tied to a single record.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// RecordData returns raw trimmed to MaxLogRecordDataSize and whether it was
// truncated.
func RecordData(raw []byte) ([]byte, bool) {
	if len(raw) > MaxLogRecordDataSize {
		return raw[:MaxLogRecordDataSize], true
	}
	return raw, false
}
