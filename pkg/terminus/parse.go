package terminus

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pldm-go/pldm-go/pkg/log"
	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/pldm"
)

// Decode pass states reported in StateChangeEvents.
const (
	PassStarted   = "started"
	PassCompleted = "completed"
)

// ParseReport summarizes one decode pass.
type ParseReport struct {
	// PassID identifies the pass in protocol event logs.
	PassID string `json:"passId"`

	// TID is the terminus the pass ran on.
	TID pldm.TID `json:"tid"`

	// Records is the number of raw records examined.
	Records int `json:"records"`

	// Decoded counts records that contributed to a cache.
	Decoded int `json:"decoded"`

	// Inert counts well-formed records of types that are not cached.
	Inert int `json:"inert"`

	// Skipped lists the records that failed to decode, in record order.
	Skipped []*pdr.RecordError `json:"-"`

	// Duration is the wall time of the pass.
	Duration time.Duration `json:"duration"`
}

// SkippedCount returns the number of skipped records.
func (r *ParseReport) SkippedCount() int {
	return len(r.Skipped)
}

// ParsePDRs runs a decode pass over the raw records. The sensor name and
// terminus name caches are replaced, not merged, by the caches built from
// this pass. Records that fail to decode are skipped and reported.
//
// Running the pass again on an unchanged record set yields identical caches.
func (t *Terminus) ParsePDRs() *ParseReport {
	t.mu.RLock()
	raw := make([][]byte, len(t.pdrs))
	copy(raw, t.pdrs)
	logger := t.logger
	plog := t.protocolLogger
	t.mu.RUnlock()

	start := time.Now()
	report := &ParseReport{
		PassID:  uuid.NewString(),
		TID:     t.tid,
		Records: len(raw),
	}
	t.logPass(plog, report.PassID, "", PassStarted)

	sensorNames := make(map[uint16]*pdr.SensorAuxiliaryNames)
	var entityNames []*pdr.EntityAuxiliaryNames
	var name string
	var hasName bool

	for _, res := range pdr.DecodeAll(raw) {
		ev := &log.RecordEvent{Index: res.Index, Size: res.Size}

		if res.Err != nil {
			var re *pdr.RecordError
			if !errors.As(res.Err, &re) {
				re = &pdr.RecordError{Index: res.Index, Err: res.Err}
			}
			report.Skipped = append(report.Skipped, re)

			ev.Handle = re.Handle
			ev.Type = uint8(re.Type)
			ev.Outcome = log.OutcomeSkipped
			ev.Reason = re.Err.Error()
			ev.Data, ev.Truncated = log.RecordData(raw[res.Index])
			if logger != nil {
				logger.Debug("skipping malformed PDR",
					"tid", t.tid,
					"index", res.Index,
					"error", re)
			}
			t.logRecord(plog, report.PassID, ev)
			continue
		}

		hdr := res.Record.Header()
		ev.Handle = hdr.RecordHandle
		ev.Type = uint8(hdr.Type)

		switch rec := res.Record.(type) {
		case *pdr.SensorAuxiliaryNames:
			// A later record for the same sensor ID replaces the earlier one.
			if prev, exists := sensorNames[rec.SensorID]; exists && logger != nil {
				logger.Debug("replacing sensor names",
					"tid", t.tid,
					"sensor", rec.SensorID,
					"previousHandle", prev.Header().RecordHandle,
					"handle", hdr.RecordHandle)
			}
			sensorNames[rec.SensorID] = rec
			ev.Outcome = log.OutcomeDecoded
			report.Decoded++

		case *pdr.EntityAuxiliaryNames:
			entityNames = append(entityNames, rec)
			if !hasName && rec.Entity.IsOverallSystem() && len(rec.Names) > 0 {
				name = rec.Names[0].Name
				hasName = true
			}
			ev.Outcome = log.OutcomeDecoded
			report.Decoded++

		default:
			ev.Outcome = log.OutcomeInert
			report.Inert++
		}
		t.logRecord(plog, report.PassID, ev)
	}
	report.Duration = time.Since(start)

	t.mu.Lock()
	t.sensorNames = sensorNames
	t.entityNames = entityNames
	t.name = name
	t.hasName = hasName
	t.lastPass = report
	t.mu.Unlock()

	if logger != nil {
		logger.Debug("PDR decode pass completed",
			"tid", t.tid,
			"pass", report.PassID,
			"records", report.Records,
			"decoded", report.Decoded,
			"inert", report.Inert,
			"skipped", report.SkippedCount())
	}
	t.logPass(plog, report.PassID, PassStarted, PassCompleted)

	return report
}

func (t *Terminus) logRecord(plog log.Logger, passID string, ev *log.RecordEvent) {
	if plog == nil {
		return
	}
	plog.Log(log.Event{
		Timestamp: time.Now(),
		PassID:    passID,
		TID:       uint8(t.tid),
		Layer:     log.LayerDecoder,
		Category:  log.CategoryRecord,
		Record:    ev,
	})
}

func (t *Terminus) logPass(plog log.Logger, passID, oldState, newState string) {
	if plog == nil {
		return
	}
	plog.Log(log.Event{
		Timestamp: time.Now(),
		PassID:    passID,
		TID:       uint8(t.tid),
		Layer:     log.LayerRegistry,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityPass,
			OldState: oldState,
			NewState: newState,
		},
	})
}
