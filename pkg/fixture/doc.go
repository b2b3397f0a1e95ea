// Package fixture loads terminus descriptions from YAML.
//
// A fixture gives the TID, the supported types and commands, and the PDRs of
// one terminus. Records are either raw hex captured from a device or
// structured auxiliary-name records that are encoded on load:
//
//	tid: 1
//	types: [BASE, PLATFORM]
//	commands:
//	  PLATFORM: [0x11, 0x3a]
//	pdrs:
//	  - hex: "00000001 01 06 0000 1500 0000 0100 01 01 656e00 0054004500... "
//	  - sensorNames:
//	      sensorId: 2
//	      names: [[{tag: en, name: FAN}]]
//	  - entityNames:
//	      entity: {type: 0x8003, instance: 1, containerId: 0}
//	      names: [{tag: en, name: S0}]
//	  - raw: {type: 2, payload: "0102"}
//
// Types are given by name or number.
package fixture
