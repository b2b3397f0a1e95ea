package pdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Builder encodes PDRs. Record handles are assigned sequentially starting
// at 1 unless set explicitly with SetNextHandle.
type Builder struct {
	nextHandle   uint32
	changeNumber uint16
}

// NewBuilder creates a Builder whose first record handle is 1.
func NewBuilder() *Builder {
	return &Builder{nextHandle: 1}
}

// SetNextHandle sets the handle used for the next record.
func (b *Builder) SetNextHandle(h uint32) *Builder {
	b.nextHandle = h
	return b
}

// SetChangeNumber sets the record change number written to every header.
func (b *Builder) SetChangeNumber(n uint16) *Builder {
	b.changeNumber = n
	return b
}

// Raw wraps payload in a header of type t.
func (b *Builder) Raw(t Type, payload []byte) ([]byte, error) {
	if len(payload) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	h := Header{
		RecordHandle:       b.nextHandle,
		Version:            HeaderVersion,
		Type:               t,
		RecordChangeNumber: b.changeNumber,
		DataLength:         uint16(len(payload)),
	}
	b.nextHandle++

	out := make([]byte, 0, HeaderSize+len(payload))
	out = AppendHeader(out, h)
	return append(out, payload...), nil
}

// SensorAuxiliaryNames encodes a Sensor Auxiliary Names PDR. SensorCount is
// taken from len(r.Names).
func (b *Builder) SensorAuxiliaryNames(r *SensorAuxiliaryNames) ([]byte, error) {
	if len(r.Names) == 0 || len(r.Names) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %d sub-entries", ErrInvalidCount, len(r.Names))
	}

	var payload []byte
	payload = binary.LittleEndian.AppendUint16(payload, r.TerminusHandle)
	payload = binary.LittleEndian.AppendUint16(payload, r.SensorID)
	payload = append(payload, uint8(len(r.Names)))

	for i, names := range r.Names {
		var err error
		if payload, err = appendNames(payload, names); err != nil {
			return nil, fmt.Errorf("sub-entry %d: %w", i, err)
		}
	}
	return b.Raw(TypeSensorAuxiliaryNames, payload)
}

// EntityAuxiliaryNames encodes an Entity Auxiliary Names PDR.
func (b *Builder) EntityAuxiliaryNames(r *EntityAuxiliaryNames) ([]byte, error) {
	var payload []byte
	payload = binary.LittleEndian.AppendUint16(payload, r.Entity.Type)
	payload = binary.LittleEndian.AppendUint16(payload, r.Entity.Instance)
	payload = binary.LittleEndian.AppendUint16(payload, r.Entity.ContainerID)
	payload = append(payload, r.SharedNameCount)

	payload, err := appendNames(payload, r.Names)
	if err != nil {
		return nil, err
	}
	return b.Raw(TypeEntityAuxiliaryNames, payload)
}

// appendNames appends a nameStringCount byte and the names.
func appendNames(dst []byte, names []LocalizedName) ([]byte, error) {
	if len(names) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyNames, len(names))
	}
	dst = append(dst, uint8(len(names)))
	for _, n := range names {
		var err error
		if dst, err = AppendLocalizedName(dst, n); err != nil {
			return nil, err
		}
	}
	return dst, nil
}
