package pdr

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the common PDR header in bytes.
const HeaderSize = 10

// HeaderVersion is the common header version written by Builder.
const HeaderVersion uint8 = 1

// Header is the common PDR header.
type Header struct {
	RecordHandle       uint32 `cbor:"1,keyasint" json:"recordHandle"`
	Version            uint8  `cbor:"2,keyasint" json:"version"`
	Type               Type   `cbor:"3,keyasint" json:"type"`
	RecordChangeNumber uint16 `cbor:"4,keyasint" json:"recordChangeNumber"`
	DataLength         uint16 `cbor:"5,keyasint" json:"dataLength"`
}

// DecodeHeader reads the common header and checks that the declared payload
// fits inside raw.
func DecodeHeader(raw []byte) (Header, error) {
	if len(raw) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d < %d bytes", ErrTruncatedHeader, len(raw), HeaderSize)
	}

	h := Header{
		RecordHandle:       binary.LittleEndian.Uint32(raw[0:4]),
		Version:            raw[4],
		Type:               Type(raw[5]),
		RecordChangeNumber: binary.LittleEndian.Uint16(raw[6:8]),
		DataLength:         binary.LittleEndian.Uint16(raw[8:10]),
	}

	if remaining := len(raw) - HeaderSize; int(h.DataLength) > remaining {
		return h, fmt.Errorf("%w: dataLength %d > %d remaining", ErrLengthOverrun, h.DataLength, remaining)
	}
	return h, nil
}

// AppendHeader appends the encoded header to dst.
func AppendHeader(dst []byte, h Header) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, h.RecordHandle)
	dst = append(dst, h.Version, byte(h.Type))
	dst = binary.LittleEndian.AppendUint16(dst, h.RecordChangeNumber)
	dst = binary.LittleEndian.AppendUint16(dst, h.DataLength)
	return dst
}
