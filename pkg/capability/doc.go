// Package capability answers "does this terminus support PLDM type T /
// command C" from the two packed bitmaps collected during discovery.
//
// # Layout
//
// Supported types are a 64-bit mask: bit i is set iff type i is supported.
//
// Supported commands are a byte slice treated as a packed 2D bit array. The
// byte for (type, command) is at index type*8 + command/8 and the command's
// bit within that byte is command%8:
//
//	index := int(t)*8 + int(c)/8
//	mask  := byte(1) << (c % 8)
//
// The slice is sized by the discovery collaborator. Queries past its end are
// a normal "not supported" outcome, never a fault.
//
// # Two contracts
//
// Supports* return plain booleans for steady-state checks. Check returns a
// distinguishable error (ErrTypeUnsupported, ErrCommandOutOfRange,
// ErrCommandUnsupported) for callers that want to log why a command is not
// available. Both go through the same index arithmetic.
package capability
