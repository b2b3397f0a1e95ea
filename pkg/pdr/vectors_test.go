package pdr

// Reference record vectors. Integers are little endian; names are UTF-16BE.

var sensorOneName = []byte{
	0x0, 0x0, 0x0, 0x1, // record handle
	0x1, // header version
	byte(TypeSensorAuxiliaryNames),
	0x0, 0x0, // record change number
	21, 0x0, // data length
	0x0, 0x0, // terminus handle
	0x1, 0x0, // sensor ID
	0x1, // sensor count
	0x1, // name string count
	'e', 'n', 0x0, // language tag
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '1', 0x0, 0x0, // "TEMP1"
}

var sensorThreeNames = []byte{
	0x0, 0x0, 0x0, 0x1,
	0x1,
	byte(TypeSensorAuxiliaryNames),
	0x0, 0x0,
	53, 0x0,
	0x0, 0x0,
	0x1, 0x0,
	0x1,
	0x3,
	'e', 'n', 0x0,
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '1', 0x0, 0x0,
	'f', 'r', 0x0,
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '2', 0x0, 0x0,
	'f', 'r', 0x0,
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '1', 0x0, '2', 0x0, 0x0,
}

var sensorTwoSubEntries = []byte{
	0x0, 0x0, 0x0, 0x1,
	0x1,
	byte(TypeSensorAuxiliaryNames),
	0x0, 0x0,
	54, 0x0,
	0x0, 0x0,
	0x1, 0x0,
	0x2, // sensor count
	0x1, // sub-entry 0 name count
	'e', 'n', 0x0,
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '1', 0x0, 0x0,
	0x2, // sub-entry 1 name count
	'f', 'r', 0x0,
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '2', 0x0, 0x0,
	'f', 'r', 0x0,
	0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '1', 0x0, '2', 0x0, 0x0,
}

var entitySystemS0 = []byte{
	0x1, 0x0, 0x0, 0x0,
	0x1,
	byte(TypeEntityAuxiliaryNames),
	0x1, 0x0,
	0x11, 0x0,
	0x03, 0x80, // entity type: logical system
	0x1, 0x0, // entity instance 1
	0x0, 0x0, // container ID: overall system
	0x0, // shared name count
	0x1, // name string count
	'e', 'n', 0x0,
	0x0, 'S', 0x0, '0', 0x0, 0x0, // "S0"
}

// withDataLengthBigEndian returns a copy of raw with the two dataLength bytes
// swapped, as some captured vectors have them.
func withDataLengthBigEndian(raw []byte) []byte {
	out := append([]byte(nil), raw...)
	out[8], out[9] = out[9], out[8]
	return out
}
