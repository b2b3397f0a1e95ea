package pdr

// Record is a decoded PDR. The concrete type is one of *SensorAuxiliaryNames,
// *EntityAuxiliaryNames or *Opaque.
type Record interface {
	// Header returns the common header the record was decoded from.
	Header() Header

	isRecord()
}

// SensorAuxiliaryNames holds the localized names of a (possibly composite)
// sensor. Names has one entry per sensor sub-entry, each a list of localized
// names for that sub-entry.
type SensorAuxiliaryNames struct {
	hdr Header

	// TerminusHandle is the PLDM terminus handle field (informational).
	TerminusHandle uint16 `cbor:"1,keyasint" json:"terminusHandle" yaml:"terminusHandle"`

	// SensorID identifies the sensor the names belong to.
	SensorID uint16 `cbor:"2,keyasint" json:"sensorId" yaml:"sensorId"`

	// SensorCount is the number of sub-entries; len(Names) == SensorCount.
	SensorCount uint8 `cbor:"3,keyasint" json:"sensorCount" yaml:"-"`

	// Names are the localized name sets, one per sub-entry.
	Names [][]LocalizedName `cbor:"4,keyasint" json:"names" yaml:"names"`
}

// Header returns the common header.
func (r *SensorAuxiliaryNames) Header() Header { return r.hdr }

func (*SensorAuxiliaryNames) isRecord() {}

// Entity identifies a PLDM entity.
type Entity struct {
	Type        uint16 `cbor:"1,keyasint" json:"type" yaml:"type"`
	Instance    uint16 `cbor:"2,keyasint" json:"instance" yaml:"instance"`
	ContainerID uint16 `cbor:"3,keyasint" json:"containerId" yaml:"containerId"`
}

// IsOverallSystem returns true for the logical system entity in the overall
// system container, whose names record names the terminus itself.
func (e Entity) IsOverallSystem() bool {
	return e.Type == EntityTypeSystemLogical && e.ContainerID == ContainerIDSystem
}

// EntityAuxiliaryNames holds the localized names of an entity.
type EntityAuxiliaryNames struct {
	hdr Header

	Entity          Entity          `cbor:"1,keyasint" json:"entity" yaml:"entity"`
	SharedNameCount uint8           `cbor:"2,keyasint" json:"sharedNameCount" yaml:"sharedNameCount"`
	Names           []LocalizedName `cbor:"3,keyasint" json:"names" yaml:"names"`
}

// Header returns the common header.
func (r *EntityAuxiliaryNames) Header() Header { return r.hdr }

func (*EntityAuxiliaryNames) isRecord() {}

// Opaque is a record of a type this package does not decode.
type Opaque struct {
	hdr Header

	// Payload is a copy of the record payload.
	Payload []byte
}

// Header returns the common header.
func (r *Opaque) Header() Header { return r.hdr }

func (*Opaque) isRecord() {}

// Compile-time interface satisfaction checks.
var (
	_ Record = (*SensorAuxiliaryNames)(nil)
	_ Record = (*EntityAuxiliaryNames)(nil)
	_ Record = (*Opaque)(nil)
)
