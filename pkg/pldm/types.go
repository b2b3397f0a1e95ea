package pldm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownType is returned by LookupType for unrecognized input.
var ErrUnknownType = errors.New("unknown PLDM type")

// TID identifies a terminus within a discovery session.
type TID uint8

// Reserved TID values.
const (
	// TIDUnassigned marks a terminus that has not been given a TID yet.
	TIDUnassigned TID = 0x00

	// TIDReserved is reserved by DSP0240 and never assigned.
	TIDReserved TID = 0xFF
)

// IsAssignable returns true if the TID may be assigned to a terminus.
func (t TID) IsAssignable() bool {
	return t != TIDUnassigned && t != TIDReserved
}

// Type is a PLDM message type.
type Type uint8

// PLDM message types (DSP0245).
const (
	TypeBase           Type = 0x00
	TypeSMBIOS         Type = 0x01
	TypePlatform       Type = 0x02
	TypeBIOS           Type = 0x03
	TypeFRU            Type = 0x04
	TypeFirmwareUpdate Type = 0x05
	TypeRDE            Type = 0x06
	TypeOEM            Type = 0x3F
)

// MaxType is the highest type number representable in the supported types mask.
const MaxType Type = 63

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeBase:
		return "BASE"
	case TypeSMBIOS:
		return "SMBIOS"
	case TypePlatform:
		return "PLATFORM"
	case TypeBIOS:
		return "BIOS"
	case TypeFRU:
		return "FRU"
	case TypeFirmwareUpdate:
		return "FIRMWARE_UPDATE"
	case TypeRDE:
		return "RDE"
	case TypeOEM:
		return "OEM"
	default:
		return "UNKNOWN"
	}
}

// ParseType parses a type name as returned by String.
func ParseType(s string) (Type, bool) {
	for t := TypeBase; t <= TypeRDE; t++ {
		if t.String() == s {
			return t, true
		}
	}
	if s == TypeOEM.String() {
		return TypeOEM, true
	}
	return 0, false
}

// LookupType parses a type given by name (case-insensitive) or by number
// (decimal or 0x-prefixed hex, at most MaxType).
func LookupType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if t, ok := ParseType(strings.ToUpper(s)); ok {
		return t, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil || Type(n) > MaxType {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return Type(n), nil
}
