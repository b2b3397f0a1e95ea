// Package pldm defines identifiers shared by the PLDM platform packages.
//
// PLDM (Platform Level Data Model, DMTF DSP0240) groups its messages into
// numbered types. A terminus advertises which types it implements through a
// 64-bit mask and which commands it implements per type through a packed
// command bitmap (see package capability).
//
// # Terminus IDs
//
// Every terminus discovered on the management bus is assigned a TID that is
// unique for the discovery session. TID 0x00 means "unassigned" and 0xFF is
// reserved; neither identifies a usable terminus.
package pldm
