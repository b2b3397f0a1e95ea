package pdr

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	// ErrTruncatedHeader indicates fewer than HeaderSize bytes.
	ErrTruncatedHeader = errors.New("truncated PDR header")

	// ErrLengthOverrun indicates dataLength runs past the end of the buffer.
	ErrLengthOverrun = errors.New("PDR data length exceeds buffer")

	// ErrTruncatedPayload indicates a fixed field runs past the payload end.
	ErrTruncatedPayload = errors.New("truncated PDR payload")

	// ErrUnterminatedString indicates a string field without its terminator.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrInvalidCount indicates a count field with an invalid value.
	ErrInvalidCount = errors.New("invalid count")
)

// Encode errors.
var (
	ErrPayloadTooLarge = errors.New("PDR payload too large")
	ErrTooManyNames    = errors.New("too many names")
	ErrInvalidString   = errors.New("string cannot be encoded")
)

// RecordError describes why a single PDR could not be decoded.
type RecordError struct {
	// Index is the position of the record in its record set (-1 if unknown).
	Index int

	// Handle is the record handle, valid when HeaderOK is true.
	Handle uint32

	// Type is the PDR type, valid when HeaderOK is true.
	Type Type

	// HeaderOK reports whether the common header could be read.
	HeaderOK bool

	// Offset is the payload offset where decoding stopped.
	Offset int

	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	prefix := "pdr"
	if e.Index >= 0 {
		prefix = fmt.Sprintf("pdr[%d]", e.Index)
	}
	if !e.HeaderOK {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return fmt.Sprintf("%s handle=%d type=%s offset=%d: %v", prefix, e.Handle, e.Type, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}
