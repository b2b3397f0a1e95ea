package terminus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pldm-go/pldm-go/pkg/pdr"
)

// Captured Sensor Auxiliary Names record: sensor 1, one name ("en", "TEMP1").
var sensorTemp1 = []byte{
	0x0, 0x0, 0x0, 0x1, // record handle
	0x1,                // header version
	0x6,                // type: sensor auxiliary names
	0x0, 0x0,           // record change number
	21, 0x0,            // data length
	0x0, 0x0,           // terminus handle
	0x1, 0x0,           // sensor ID
	0x1,                // sensor count
	0x1,                // name string count
	'e', 'n', 0x0,
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '1', 0x0, 0x0,
}

// Captured Entity Auxiliary Names record for the overall system, named "S0".
var entityS0 = []byte{
	0x1, 0x0, 0x0, 0x0,
	0x1,
	0x10, // type: entity auxiliary names
	0x1, 0x0,
	0x11, 0x0,
	0x03, 0x80, // entity type: logical system
	0x1, 0x0,   // entity instance
	0x0, 0x0,   // container ID
	0x0,        // shared name count
	0x1,        // name string count
	'e', 'n', 0x0,
	0x0, 'S', 0x0, '0', 0x0, 0x0,
}

func names(pairs ...string) []pdr.LocalizedName {
	out := make([]pdr.LocalizedName, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, pdr.LocalizedName{Tag: pairs[i], Name: pairs[i+1]})
	}
	return out
}

func buildSensor(t *testing.T, b *pdr.Builder, id uint16, sets ...[]pdr.LocalizedName) []byte {
	t.Helper()
	raw, err := b.SensorAuxiliaryNames(&pdr.SensorAuxiliaryNames{SensorID: id, Names: sets})
	require.NoError(t, err)
	return raw
}

func buildEntity(t *testing.T, b *pdr.Builder, e pdr.Entity, ns []pdr.LocalizedName) []byte {
	t.Helper()
	raw, err := b.EntityAuxiliaryNames(&pdr.EntityAuxiliaryNames{Entity: e, Names: ns})
	require.NoError(t, err)
	return raw
}

func systemEntity() pdr.Entity {
	return pdr.Entity{Type: pdr.EntityTypeSystemLogical, Instance: 1, ContainerID: pdr.ContainerIDSystem}
}

// overrun returns a copy of raw whose dataLength claims more bytes than exist.
func overrun(raw []byte) []byte {
	out := append([]byte(nil), raw...)
	out[8], out[9] = 0xff, 0x00
	return out
}
