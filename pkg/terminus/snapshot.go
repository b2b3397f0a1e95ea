package terminus

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/pldm-go/pldm-go/pkg/capability"
	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/pldm"
)

// Snapshot errors.
var (
	ErrInvalidSnapshot = errors.New("invalid terminus snapshot")
)

var (
	infoEncMode cbor.EncMode
	infoDecMode cbor.DecMode
)

func init() {
	var err error

	infoEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot encoder mode: %v", err))
	}

	infoDecMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot decoder mode: %v", err))
	}
}

// Info is a point-in-time view of a terminus: identity, capabilities and the
// caches built by the last decode pass.
type Info struct {
	TID               pldm.TID                    `cbor:"1,keyasint" json:"tid"`
	SupportedTypes    capability.TypeSet          `cbor:"2,keyasint" json:"supportedTypes"`
	SupportedCommands capability.CommandSet       `cbor:"3,keyasint,omitempty" json:"supportedCommands,omitempty"`
	Name              *string                     `cbor:"4,keyasint,omitempty" json:"name,omitempty"`
	PDRCount          int                         `cbor:"5,keyasint" json:"pdrCount"`
	Sensors           []*pdr.SensorAuxiliaryNames `cbor:"6,keyasint,omitempty" json:"sensors,omitempty"`
	Entities          []*pdr.EntityAuxiliaryNames `cbor:"7,keyasint,omitempty" json:"entities,omitempty"`
}

// Info returns a snapshot of the terminus. Sensors are ordered by sensor ID.
func (t *Terminus) Info() *Info {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info := &Info{
		TID:               t.tid,
		SupportedTypes:    t.supportedTypes,
		SupportedCommands: t.supportedCommands.Clone(),
		PDRCount:          len(t.pdrs),
	}
	if t.hasName {
		name := t.name
		info.Name = &name
	}

	ids := make([]uint16, 0, len(t.sensorNames))
	for id := range t.sensorNames {
		ids = append(ids, id)
	}
	sortIDs(ids)
	for _, id := range ids {
		info.Sensors = append(info.Sensors, t.sensorNames[id])
	}
	info.Entities = append(info.Entities, t.entityNames...)

	return info
}

// Validate checks the snapshot for consistency.
func (i *Info) Validate() error {
	for _, s := range i.Sensors {
		if s == nil {
			return fmt.Errorf("%w: nil sensor entry", ErrInvalidSnapshot)
		}
		if int(s.SensorCount) != len(s.Names) {
			return fmt.Errorf("%w: sensor %d: sensorCount %d, %d name sets",
				ErrInvalidSnapshot, s.SensorID, s.SensorCount, len(s.Names))
		}
	}
	for idx, e := range i.Entities {
		if e == nil {
			return fmt.Errorf("%w: nil entity entry %d", ErrInvalidSnapshot, idx)
		}
	}
	return nil
}

// MarshalInfo encodes a snapshot to CBOR.
func MarshalInfo(info *Info) ([]byte, error) {
	return infoEncMode.Marshal(info)
}

// UnmarshalInfo decodes and validates a CBOR snapshot.
func UnmarshalInfo(data []byte) (*Info, error) {
	var info Info
	if err := infoDecMode.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &info, nil
}
