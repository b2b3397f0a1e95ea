package pdr

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// utf16BE decodes and encodes PDR name strings.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// LocalizedName is one (languageTag, name) pair.
type LocalizedName struct {
	// Tag is the language tag, e.g. "en".
	Tag string `cbor:"1,keyasint" json:"tag" yaml:"tag"`

	// Name is the human-readable name.
	Name string `cbor:"2,keyasint" json:"name" yaml:"name"`
}

// DecodeLocalizedName decodes the pair starting at buf[off] and returns it
// with the number of bytes consumed, terminators included.
func DecodeLocalizedName(buf []byte, off int) (LocalizedName, int, error) {
	if off < 0 || off > len(buf) {
		return LocalizedName{}, 0, fmt.Errorf("%w: offset %d outside %d bytes", ErrTruncatedPayload, off, len(buf))
	}

	tag, tagLen, err := decodeASCIIZ(buf[off:])
	if err != nil {
		return LocalizedName{}, 0, fmt.Errorf("language tag at offset %d: %w", off, err)
	}

	name, nameLen, err := decodeUTF16BEZ(buf[off+tagLen:])
	if err != nil {
		return LocalizedName{}, 0, fmt.Errorf("name at offset %d: %w", off+tagLen, err)
	}

	return LocalizedName{Tag: tag, Name: name}, tagLen + nameLen, nil
}

// decodeASCIIZ returns the string before the first zero byte and the length
// including that byte.
func decodeASCIIZ(b []byte) (string, int, error) {
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return "", 0, ErrUnterminatedString
	}
	return string(b[:end]), end + 1, nil
}

// decodeUTF16BEZ returns the string before the first 0x0000 code unit and the
// length including that unit.
func decodeUTF16BEZ(b []byte) (string, int, error) {
	end := -1
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return "", 0, ErrUnterminatedString
	}

	text, err := utf16BE.NewDecoder().Bytes(b[:end])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidString, err)
	}
	return string(text), end + 2, nil
}

// AppendLocalizedName appends the encoded pair to dst.
func AppendLocalizedName(dst []byte, n LocalizedName) ([]byte, error) {
	if bytes.IndexByte([]byte(n.Tag), 0) >= 0 {
		return dst, fmt.Errorf("%w: language tag %q contains NUL", ErrInvalidString, n.Tag)
	}
	encoded, err := utf16BE.NewEncoder().String(n.Name)
	if err != nil {
		return dst, fmt.Errorf("%w: %v", ErrInvalidString, err)
	}
	for i := 0; i+1 < len(encoded); i += 2 {
		if encoded[i] == 0 && encoded[i+1] == 0 {
			return dst, fmt.Errorf("%w: name %q contains NUL", ErrInvalidString, n.Name)
		}
	}

	dst = append(dst, n.Tag...)
	dst = append(dst, 0)
	dst = append(dst, encoded...)
	dst = append(dst, 0, 0)
	return dst, nil
}
