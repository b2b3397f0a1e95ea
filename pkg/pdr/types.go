package pdr

// Type is the PDR type field of the common header.
type Type uint8

// PDR types (DSP0248 Table 76).
const (
	TypeTerminusLocator        Type = 1
	TypeNumericSensor          Type = 2
	TypeNumericSensorInit      Type = 3
	TypeStateSensor            Type = 4
	TypeStateSensorInit        Type = 5
	TypeSensorAuxiliaryNames   Type = 6
	TypeOEMUnit                Type = 7
	TypeOEMStateSet            Type = 8
	TypeNumericEffecter        Type = 9
	TypeNumericEffecterInit    Type = 10
	TypeStateEffecter          Type = 11
	TypeStateEffecterInit      Type = 12
	TypeEffecterAuxiliaryNames Type = 13
	TypeEffecterOEMSemantic    Type = 14
	TypeEntityAssociation      Type = 15
	TypeEntityAuxiliaryNames   Type = 16
	TypeOEMEntityID            Type = 17
	TypeInterruptAssociation   Type = 18
	TypeEventLog               Type = 19
	TypeFRURecordSet           Type = 20
	TypeCompactNumericSensor   Type = 21
	TypeOEMDevice              Type = 126
	TypeOEM                    Type = 127
)

var typeNames = map[Type]string{
	TypeTerminusLocator:        "TERMINUS_LOCATOR",
	TypeNumericSensor:          "NUMERIC_SENSOR",
	TypeNumericSensorInit:      "NUMERIC_SENSOR_INIT",
	TypeStateSensor:            "STATE_SENSOR",
	TypeStateSensorInit:        "STATE_SENSOR_INIT",
	TypeSensorAuxiliaryNames:   "SENSOR_AUXILIARY_NAMES",
	TypeOEMUnit:                "OEM_UNIT",
	TypeOEMStateSet:            "OEM_STATE_SET",
	TypeNumericEffecter:        "NUMERIC_EFFECTER",
	TypeNumericEffecterInit:    "NUMERIC_EFFECTER_INIT",
	TypeStateEffecter:          "STATE_EFFECTER",
	TypeStateEffecterInit:      "STATE_EFFECTER_INIT",
	TypeEffecterAuxiliaryNames: "EFFECTER_AUXILIARY_NAMES",
	TypeEffecterOEMSemantic:    "EFFECTER_OEM_SEMANTIC",
	TypeEntityAssociation:      "ENTITY_ASSOCIATION",
	TypeEntityAuxiliaryNames:   "ENTITY_AUXILIARY_NAMES",
	TypeOEMEntityID:            "OEM_ENTITY_ID",
	TypeInterruptAssociation:   "INTERRUPT_ASSOCIATION",
	TypeEventLog:               "EVENT_LOG",
	TypeFRURecordSet:           "FRU_RECORD_SET",
	TypeCompactNumericSensor:   "COMPACT_NUMERIC_SENSOR",
	TypeOEMDevice:              "OEM_DEVICE",
	TypeOEM:                    "OEM",
}

// String returns the PDR type name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Entity type values (DSP0249).
const (
	// EntityTypeLogicalBit marks a logical (as opposed to physical) entity.
	EntityTypeLogicalBit uint16 = 0x8000

	// EntityTypeSystemLogical is the logical "system" entity. Its names record,
	// when it sits in the overall system container, carries the terminus name.
	EntityTypeSystemLogical uint16 = EntityTypeLogicalBit | 0x0003
)

// ContainerIDSystem is the container ID of the overall system.
const ContainerIDSystem uint16 = 0
