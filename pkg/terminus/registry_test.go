package terminus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pldm-go/pldm-go/pkg/log"
	"github.com/pldm-go/pldm-go/pkg/log/mocks"
	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/pldm"
)

func TestRegistryAddGetRemove(t *testing.T) {
	r := NewRegistry()
	term := New(8, 1)

	require.NoError(t, r.Add(term))
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(8)
	require.NoError(t, err)
	assert.Same(t, term, got)

	require.NoError(t, r.Remove(8))
	_, err = r.Get(8)
	assert.ErrorIs(t, err, ErrTerminusNotFound)
	assert.ErrorIs(t, r.Remove(8), ErrTerminusNotFound)
}

func TestRegistryRejectsReservedAndDuplicate(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Add(New(pldm.TIDUnassigned, 1)), ErrReservedTID)
	assert.ErrorIs(t, r.Add(New(pldm.TIDReserved, 1)), ErrReservedTID)

	require.NoError(t, r.Add(New(1, 1)))
	assert.ErrorIs(t, r.Add(New(1, 1)), ErrDuplicateTID)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRejectsNilTerminus(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Add(nil), ErrNilTerminus)
	assert.Zero(t, r.Len())
}

func TestRegistryTerminiSorted(t *testing.T) {
	r := NewRegistry()
	for _, tid := range []pldm.TID{30, 2, 17, 5} {
		require.NoError(t, r.Add(New(tid, 1)))
	}

	var tids []pldm.TID
	for _, term := range r.Termini() {
		tids = append(tids, term.TID())
	}
	assert.Equal(t, []pldm.TID{2, 5, 17, 30}, tids)
}

func TestRegistryParseAll(t *testing.T) {
	r := NewRegistry()
	for tid := pldm.TID(1); tid <= 20; tid++ {
		term := New(tid, 1)
		term.AppendPDR(buildSensor(t, pdr.NewBuilder(), uint16(tid), names("en", "S")))
		term.AppendPDR(overrun(sensorTemp1))
		require.NoError(t, r.Add(term))
	}

	reports, err := r.ParseAll(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, reports, 20)

	for _, term := range r.Termini() {
		report := reports[term.TID()]
		require.NotNil(t, report, "tid %d", term.TID())
		assert.Equal(t, 1, report.Decoded)
		assert.Equal(t, 1, report.SkippedCount())
		assert.NotNil(t, term.SensorAuxiliaryNames(uint16(term.TID())))
	}
}

func TestRegistryParseAllCanceled(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(New(1, 1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := r.ParseAll(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reports)
}

func TestRegistryParseAllCanceledLogsSkippedTermini(t *testing.T) {
	plog := mocks.NewMockLogger(t)
	plog.EXPECT().Log(mock.MatchedBy(func(e log.Event) bool {
		return e.StateChange != nil && e.StateChange.NewState == TerminusAdded
	})).Twice()
	plog.EXPECT().Log(mock.MatchedBy(func(e log.Event) bool {
		return e.Category == log.CategoryError && e.Error != nil &&
			e.Error.Context == "decode pass not run"
	})).Twice()

	r := NewRegistry()
	r.SetProtocolLogger(plog)
	require.NoError(t, r.Add(New(1, 1)))
	require.NoError(t, r.Add(New(2, 1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ParseAll(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistryPropagatesProtocolLogger(t *testing.T) {
	plog := mocks.NewMockLogger(t)
	plog.EXPECT().Log(mock.MatchedBy(func(e log.Event) bool {
		return e.StateChange != nil && e.StateChange.Entity == log.StateEntityTerminus &&
			e.StateChange.NewState == TerminusAdded
	})).Once()
	plog.EXPECT().Log(mock.MatchedBy(func(e log.Event) bool {
		return e.StateChange != nil && e.StateChange.Entity == log.StateEntityPass
	})).Twice()

	r := NewRegistry()
	r.SetProtocolLogger(plog)

	term := New(6, 1)
	require.NoError(t, r.Add(term))
	term.ParsePDRs()
}
