package terminus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pldm-go/pldm-go/pkg/log"
	"github.com/pldm-go/pldm-go/pkg/pldm"
)

// Registry errors.
var (
	ErrReservedTID      = errors.New("reserved TID")
	ErrDuplicateTID     = errors.New("duplicate TID")
	ErrTerminusNotFound = errors.New("terminus not found")
	ErrNilTerminus      = errors.New("nil terminus")
)

// Terminus lifecycle states reported in StateChangeEvents.
const (
	TerminusAdded   = "added"
	TerminusRemoved = "removed"
)

// Registry tracks the termini of a discovery session by TID.
type Registry struct {
	mu      sync.RWMutex
	termini map[pldm.TID]*Terminus

	logger         *slog.Logger
	protocolLogger log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{termini: make(map[pldm.TID]*Terminus)}
}

// SetLogger sets the operational logger. Termini added afterwards inherit it
// unless they already have one.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// SetProtocolLogger sets the event logger. Termini added afterwards inherit
// it unless they already have one.
func (r *Registry) SetProtocolLogger(logger log.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.protocolLogger = logger
}

// Add registers a terminus. TIDs 0x00 and 0xFF are rejected.
func (r *Registry) Add(t *Terminus) error {
	if t == nil {
		return ErrNilTerminus
	}
	tid := t.TID()
	if !tid.IsAssignable() {
		return fmt.Errorf("%w: %#02x", ErrReservedTID, uint8(tid))
	}

	r.mu.Lock()
	if _, exists := r.termini[tid]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrDuplicateTID, tid)
	}
	r.termini[tid] = t
	logger := r.logger
	plog := r.protocolLogger
	r.mu.Unlock()

	t.mu.Lock()
	if t.logger == nil {
		t.logger = logger
	}
	if t.protocolLogger == nil {
		t.protocolLogger = plog
	}
	t.mu.Unlock()

	if logger != nil {
		logger.Debug("terminus added", "tid", tid)
	}
	r.logState(plog, tid, "", TerminusAdded)
	return nil
}

// Get returns the terminus with the given TID.
func (r *Registry) Get(tid pldm.TID) (*Terminus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.termini[tid]
	if !exists {
		return nil, ErrTerminusNotFound
	}
	return t, nil
}

// Remove unregisters a terminus.
func (r *Registry) Remove(tid pldm.TID) error {
	r.mu.Lock()
	if _, exists := r.termini[tid]; !exists {
		r.mu.Unlock()
		return ErrTerminusNotFound
	}
	delete(r.termini, tid)
	logger := r.logger
	plog := r.protocolLogger
	r.mu.Unlock()

	if logger != nil {
		logger.Debug("terminus removed", "tid", tid)
	}
	r.logState(plog, tid, TerminusAdded, TerminusRemoved)
	return nil
}

// Len returns the number of registered termini.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.termini)
}

// Termini returns all registered termini ordered by TID.
func (r *Registry) Termini() []*Terminus {
	r.mu.RLock()
	result := make([]*Terminus, 0, len(r.termini))
	for _, t := range r.termini {
		result = append(result, t)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].TID() < result[j].TID() })
	return result
}

// ParseAll runs the decode pass of every registered terminus, at most limit
// at a time (limit <= 0 means no limit). Termini share no mutable state, so
// passes run concurrently. Once ctx is done no further passes start; the
// reports of passes that ran are returned together with ctx's error.
func (r *Registry) ParseAll(ctx context.Context, limit int) (map[pldm.TID]*ParseReport, error) {
	termini := r.Termini()

	var mu sync.Mutex
	reports := make(map[pldm.TID]*ParseReport, len(termini))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, t := range termini {
		if gctx.Err() != nil {
			break
		}
		t := t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report := t.ParsePDRs()

			mu.Lock()
			reports[t.TID()] = report
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		r.mu.RLock()
		plog := r.protocolLogger
		r.mu.RUnlock()
		for _, t := range termini {
			if _, ran := reports[t.TID()]; !ran {
				r.logError(plog, t.TID(), err)
			}
		}
	}
	return reports, err
}

func (r *Registry) logState(plog log.Logger, tid pldm.TID, oldState, newState string) {
	if plog == nil {
		return
	}
	plog.Log(log.Event{
		Timestamp: time.Now(),
		TID:       uint8(tid),
		Layer:     log.LayerRegistry,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityTerminus,
			OldState: oldState,
			NewState: newState,
		},
	})
}

func (r *Registry) logError(plog log.Logger, tid pldm.TID, err error) {
	if plog == nil {
		return
	}
	plog.Log(log.Event{
		Timestamp: time.Now(),
		TID:       uint8(tid),
		Layer:     log.LayerRegistry,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerRegistry,
			Message: err.Error(),
			Context: "decode pass not run",
		},
	})
}
