package capability

import (
	"errors"
	"fmt"

	"github.com/pldm-go/pldm-go/pkg/pldm"
)

// BytesPerType is the number of command bitmap bytes reserved per type.
const BytesPerType = 8

// Capability errors returned by Check.
var (
	ErrTypeUnsupported    = errors.New("type not supported")
	ErrCommandOutOfRange  = errors.New("command index out of range")
	ErrCommandUnsupported = errors.New("command not supported")
)

// TypeSet is the supported PLDM types mask.
type TypeSet uint64

// NewTypeSet creates a TypeSet with the given types set.
func NewTypeSet(types ...pldm.Type) TypeSet {
	var s TypeSet
	return s.With(types...)
}

// With returns a copy of the set with the given types added.
// Types above pldm.MaxType are ignored.
func (s TypeSet) With(types ...pldm.Type) TypeSet {
	for _, t := range types {
		if t <= pldm.MaxType {
			s |= 1 << t
		}
	}
	return s
}

// Supports returns true if bit t is set.
func (s TypeSet) Supports(t pldm.Type) bool {
	if t > pldm.MaxType {
		return false
	}
	return s&(1<<t) != 0
}

// Types returns the supported types in ascending order.
func (s TypeSet) Types() []pldm.Type {
	var result []pldm.Type
	for t := pldm.Type(0); t <= pldm.MaxType; t++ {
		if s.Supports(t) {
			result = append(result, t)
		}
	}
	return result
}

// CommandSet is the packed supported commands bitmap.
type CommandSet []byte

// NewCommandSet allocates a zeroed bitmap covering types [0, types).
func NewCommandSet(types int) CommandSet {
	if types <= 0 {
		return CommandSet{}
	}
	return make(CommandSet, types*BytesPerType)
}

// commandIndex is the one place the (type, command) arithmetic lives.
func commandIndex(t pldm.Type, c uint8) (int, byte) {
	return int(t)*BytesPerType + int(c)/8, byte(1) << (c % 8)
}

// Supports returns true if the bit for (t, c) is inside the bitmap and set.
func (cs CommandSet) Supports(t pldm.Type, c uint8) bool {
	idx, mask := commandIndex(t, c)
	if idx >= len(cs) {
		return false
	}
	return cs[idx]&mask != 0
}

// Set returns the bitmap with the bit for (t, c) set, growing it when the
// index lies past the end. The receiver may be modified in place.
func (cs CommandSet) Set(t pldm.Type, c uint8) CommandSet {
	idx, mask := commandIndex(t, c)
	if idx >= len(cs) {
		grown := make(CommandSet, idx+1)
		copy(grown, cs)
		cs = grown
	}
	cs[idx] |= mask
	return cs
}

// Clone returns an independent copy of the bitmap.
func (cs CommandSet) Clone() CommandSet {
	if cs == nil {
		return nil
	}
	out := make(CommandSet, len(cs))
	copy(out, cs)
	return out
}

// Check reports why (t, c) is or is not supported. It returns nil only when
// the type is supported and the command bit is set.
func Check(types TypeSet, cmds CommandSet, t pldm.Type, c uint8) error {
	if !types.Supports(t) {
		return fmt.Errorf("%w: type %d", ErrTypeUnsupported, t)
	}
	idx, mask := commandIndex(t, c)
	if idx >= len(cmds) {
		return fmt.Errorf("%w: type %d command %d index %d >= %d", ErrCommandOutOfRange, t, c, idx, len(cmds))
	}
	if cmds[idx]&mask == 0 {
		return fmt.Errorf("%w: type %d command %d", ErrCommandUnsupported, t, c)
	}
	return nil
}

// SupportsCommand returns true if the type is supported and the command bit
// is set. Out-of-range queries return false.
func SupportsCommand(types TypeSet, cmds CommandSet, t pldm.Type, c uint8) bool {
	return Check(types, cmds, t, c) == nil
}
