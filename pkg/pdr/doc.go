// Package pdr decodes PLDM Platform Descriptor Records (DSP0248).
//
// A terminus publishes its PDRs as opaque byte buffers. Each buffer starts
// with a fixed 10-byte header followed by a type-specific payload:
//
//	recordHandle:4 | headerVersion:1 | pdrType:1 | recordChangeNumber:2 |
//	dataLength:2 | payload:dataLength
//
// Multi-byte integers are little endian. dataLength is always checked against
// the buffer, so captured records whose dataLength bytes are swapped are
// rejected with ErrLengthOverrun rather than decoded.
//
// # Decoded Types
//
// Two record types are decoded into typed variants:
//   - Sensor Auxiliary Names (type 6): localized names per sensor sub-entry
//   - Entity Auxiliary Names (type 16): localized names for an entity
//
// Every other type decodes to an *Opaque record carrying the raw payload.
// Unknown types are not an error.
//
// # Localized Names
//
// A localized name is a (languageTag, name) pair. The tag is zero-terminated
// ASCII; the name is zero-terminated UTF-16 big endian. DecodeLocalizedName
// returns the pair and the number of bytes it consumed so repeated groups
// can be walked with an explicit offset.
//
// # Failure Isolation
//
// Records come from a remote, possibly buggy device. Decode reports a
// *RecordError for a structurally invalid record and DecodeAll keeps going
// with the next one, so one bad record never hides the others.
package pdr
