package pdr

import (
	"encoding/binary"
	"fmt"
)

// cursor walks a payload with an explicit offset.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) need(n int) error {
	if c.off+n > len(c.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedPayload, n, c.off, len(c.buf)-c.off)
	}
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

// names decodes count localized names.
func (c *cursor) names(count uint8) ([]LocalizedName, error) {
	// Every pair needs at least 3 bytes (tag NUL + name NUL unit).
	if err := c.need(int(count) * 3); err != nil {
		return nil, fmt.Errorf("%w: %d names: %v", ErrInvalidCount, count, err)
	}

	out := make([]LocalizedName, 0, count)
	for i := 0; i < int(count); i++ {
		n, consumed, err := DecodeLocalizedName(c.buf, c.off)
		if err != nil {
			return nil, err
		}
		c.off += consumed
		out = append(out, n)
	}
	return out, nil
}

// Decode decodes a single raw PDR. Records of types without a decoder return
// an *Opaque record. Errors are *RecordError with Index -1.
func Decode(raw []byte) (Record, error) {
	hdr, err := DecodeHeader(raw)
	if err != nil {
		return nil, &RecordError{
			Index:    -1,
			Handle:   hdr.RecordHandle,
			Type:     hdr.Type,
			HeaderOK: len(raw) >= HeaderSize,
			Err:      err,
		}
	}

	c := &cursor{buf: raw[HeaderSize : HeaderSize+int(hdr.DataLength)]}

	var rec Record
	switch hdr.Type {
	case TypeSensorAuxiliaryNames:
		rec, err = decodeSensorAuxiliaryNames(c, hdr)
	case TypeEntityAuxiliaryNames:
		rec, err = decodeEntityAuxiliaryNames(c, hdr)
	default:
		payload := make([]byte, len(c.buf))
		copy(payload, c.buf)
		rec = &Opaque{hdr: hdr, Payload: payload}
	}
	if err != nil {
		return nil, &RecordError{
			Index:    -1,
			Handle:   hdr.RecordHandle,
			Type:     hdr.Type,
			HeaderOK: true,
			Offset:   c.off,
			Err:      err,
		}
	}
	return rec, nil
}

func decodeSensorAuxiliaryNames(c *cursor, hdr Header) (*SensorAuxiliaryNames, error) {
	rec := &SensorAuxiliaryNames{hdr: hdr}

	var err error
	if rec.TerminusHandle, err = c.u16(); err != nil {
		return nil, err
	}
	if rec.SensorID, err = c.u16(); err != nil {
		return nil, err
	}
	if rec.SensorCount, err = c.u8(); err != nil {
		return nil, err
	}
	if rec.SensorCount == 0 {
		return nil, fmt.Errorf("%w: sensorCount 0", ErrInvalidCount)
	}

	rec.Names = make([][]LocalizedName, 0, rec.SensorCount)
	for i := 0; i < int(rec.SensorCount); i++ {
		count, err := c.u8()
		if err != nil {
			return nil, fmt.Errorf("sub-entry %d: %w", i, err)
		}
		names, err := c.names(count)
		if err != nil {
			return nil, fmt.Errorf("sub-entry %d: %w", i, err)
		}
		rec.Names = append(rec.Names, names)
	}
	return rec, nil
}

func decodeEntityAuxiliaryNames(c *cursor, hdr Header) (*EntityAuxiliaryNames, error) {
	rec := &EntityAuxiliaryNames{hdr: hdr}

	var err error
	if rec.Entity.Type, err = c.u16(); err != nil {
		return nil, err
	}
	if rec.Entity.Instance, err = c.u16(); err != nil {
		return nil, err
	}
	if rec.Entity.ContainerID, err = c.u16(); err != nil {
		return nil, err
	}
	if rec.SharedNameCount, err = c.u8(); err != nil {
		return nil, err
	}
	count, err := c.u8()
	if err != nil {
		return nil, err
	}
	if rec.Names, err = c.names(count); err != nil {
		return nil, err
	}
	return rec, nil
}

// Result is the outcome of decoding one record of a record set.
type Result struct {
	// Index is the position of the record in the input.
	Index int

	// Size is the raw buffer length.
	Size int

	// Record is the decoded record, nil when Err is set.
	Record Record

	// Err is a *RecordError when the record was skipped.
	Err error
}

// DecodeAll decodes every record in order. A failing record yields a Result
// with Err set and never affects the others.
func DecodeAll(pdrs [][]byte) []Result {
	results := make([]Result, 0, len(pdrs))
	for i, raw := range pdrs {
		rec, err := Decode(raw)
		if re, ok := err.(*RecordError); ok {
			re.Index = i
		}
		results = append(results, Result{Index: i, Size: len(raw), Record: rec, Err: err})
	}
	return results
}
