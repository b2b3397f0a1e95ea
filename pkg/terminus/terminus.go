package terminus

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pldm-go/pldm-go/pkg/capability"
	"github.com/pldm-go/pldm-go/pkg/log"
	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/pldm"
)

// Terminus is a discovered PLDM endpoint.
//
// Accessors are safe for concurrent use. Appending records while a decode
// pass runs on the same terminus is not ordered; callers serialize
// append-then-decode per terminus.
type Terminus struct {
	mu sync.RWMutex

	// tid never changes after construction.
	tid pldm.TID

	supportedTypes    capability.TypeSet
	supportedCommands capability.CommandSet

	// Raw records in discovery order.
	pdrs [][]byte

	// Caches rebuilt by each decode pass.
	sensorNames map[uint16]*pdr.SensorAuxiliaryNames
	entityNames []*pdr.EntityAuxiliaryNames
	name        string
	hasName     bool

	lastPass *ParseReport

	logger         *slog.Logger
	protocolLogger log.Logger
}

// New creates a terminus with the given TID and supported types mask.
// The command bitmap starts empty, meaning no command is known to be
// supported.
func New(tid pldm.TID, types capability.TypeSet) *Terminus {
	return &Terminus{
		tid:            tid,
		supportedTypes: types,
		sensorNames:    make(map[uint16]*pdr.SensorAuxiliaryNames),
	}
}

// TID returns the terminus ID.
func (t *Terminus) TID() pldm.TID {
	return t.tid
}

// SetLogger sets the operational logger. A nil logger disables output.
func (t *Terminus) SetLogger(logger *slog.Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger = logger
}

// SetProtocolLogger sets the decode event logger. A nil logger disables
// event capture.
func (t *Terminus) SetProtocolLogger(logger log.Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.protocolLogger = logger
}

// SupportedTypes returns the supported types mask.
func (t *Terminus) SupportedTypes() capability.TypeSet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedTypes
}

// SetSupportedTypes replaces the supported types mask.
func (t *Terminus) SetSupportedTypes(types capability.TypeSet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.supportedTypes = types
}

// SupportedCommands returns a copy of the supported commands bitmap.
func (t *Terminus) SupportedCommands() capability.CommandSet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedCommands.Clone()
}

// SetSupportedCommands replaces the supported commands bitmap. The bitmap is
// copied.
func (t *Terminus) SetSupportedCommands(cmds capability.CommandSet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.supportedCommands = cmds.Clone()
}

// SupportsType returns true if the type's bit is set in the supported types
// mask.
func (t *Terminus) SupportsType(typ pldm.Type) bool {
	t.mu.RLock()
	supported := t.supportedTypes.Supports(typ)
	plog := t.protocolLogger
	t.mu.RUnlock()

	if plog != nil {
		q := &log.QueryEvent{Type: uint8(typ), Supported: supported}
		if !supported {
			q.Reason = capability.ErrTypeUnsupported.Error()
		}
		t.logQuery(plog, q)
	}
	return supported
}

// SupportsCommand returns true if the type is supported and the command's bit
// is set. Queries past the end of the bitmap return false.
func (t *Terminus) SupportsCommand(typ pldm.Type, cmd uint8) bool {
	return t.CheckCommand(typ, cmd) == nil
}

// CheckCommand is SupportsCommand with a reason. It returns nil when the
// command is supported, otherwise an error wrapping one of
// capability.ErrTypeUnsupported, capability.ErrCommandOutOfRange or
// capability.ErrCommandUnsupported.
func (t *Terminus) CheckCommand(typ pldm.Type, cmd uint8) error {
	t.mu.RLock()
	err := capability.Check(t.supportedTypes, t.supportedCommands, typ, cmd)
	plog := t.protocolLogger
	t.mu.RUnlock()

	if plog != nil {
		c := cmd
		q := &log.QueryEvent{Type: uint8(typ), Command: &c, Supported: err == nil}
		if err != nil {
			q.Reason = err.Error()
		}
		t.logQuery(plog, q)
	}
	return err
}

func (t *Terminus) logQuery(plog log.Logger, q *log.QueryEvent) {
	plog.Log(log.Event{
		Timestamp: time.Now(),
		TID:       uint8(t.tid),
		Layer:     log.LayerCapability,
		Category:  log.CategoryQuery,
		Query:     q,
	})
}

// AppendPDR appends a raw record. The buffer is copied.
func (t *Terminus) AppendPDR(raw []byte) {
	buf := make([]byte, len(raw))
	copy(buf, raw)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pdrs = append(t.pdrs, buf)
}

// PDRs returns the raw records in discovery order. The buffers are shared
// and must not be modified.
func (t *Terminus) PDRs() [][]byte {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([][]byte, len(t.pdrs))
	copy(result, t.pdrs)
	return result
}

// PDRCount returns the number of raw records.
func (t *Terminus) PDRCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.pdrs)
}

// Name returns the terminus name from the last decode pass. The second
// result is false when no overall-system Entity Auxiliary Names record with
// at least one name was decoded.
func (t *Terminus) Name() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name, t.hasName
}

// SensorAuxiliaryNames returns the decoded names of a sensor, or nil if the
// last decode pass produced no record for that sensor ID.
func (t *Terminus) SensorAuxiliaryNames(sensorID uint16) *pdr.SensorAuxiliaryNames {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sensorNames[sensorID]
}

// SensorIDs returns the IDs of all sensors with decoded names, ascending.
func (t *Terminus) SensorIDs() []uint16 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]uint16, 0, len(t.sensorNames))
	for id := range t.sensorNames {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

func sortIDs(ids []uint16) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// EntityAuxiliaryNames returns every Entity Auxiliary Names record decoded by
// the last pass, in record order.
func (t *Terminus) EntityAuxiliaryNames() []*pdr.EntityAuxiliaryNames {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*pdr.EntityAuxiliaryNames, len(t.entityNames))
	copy(result, t.entityNames)
	return result
}

// LastParse returns the report of the most recent decode pass, or nil if no
// pass has run.
func (t *Terminus) LastParse() *ParseReport {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastPass
}
