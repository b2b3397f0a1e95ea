package terminus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pldm-go/pldm-go/pkg/log"
	"github.com/pldm-go/pldm-go/pkg/log/mocks"
	"github.com/pldm-go/pldm-go/pkg/pdr"
)

func TestParseSensorOneName(t *testing.T) {
	term := New(1, 1)
	term.AppendPDR(sensorTemp1)

	report := term.ParsePDRs()
	assert.Equal(t, 1, report.Decoded)
	assert.Zero(t, report.SkippedCount())

	rec := term.SensorAuxiliaryNames(1)
	require.NotNil(t, rec)
	assert.Equal(t, uint16(1), rec.SensorID)
	assert.Equal(t, uint8(1), rec.SensorCount)
	assert.Equal(t, [][]pdr.LocalizedName{names("en", "TEMP1")}, rec.Names)

	assert.Nil(t, term.SensorAuxiliaryNames(0))
}

func TestParseSensorNameShapes(t *testing.T) {
	tests := []struct {
		name string
		sets [][]pdr.LocalizedName
	}{
		{
			name: "three names one sub-entry",
			sets: [][]pdr.LocalizedName{names("en", "TEMP1", "fr", "TEMP2", "fr", "TEMP12")},
		},
		{
			name: "two sub-entries",
			sets: [][]pdr.LocalizedName{
				names("en", "TEMP1"),
				names("fr", "TEMP2", "fr", "TEMP12"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := New(1, 1)
			term.AppendPDR(buildSensor(t, pdr.NewBuilder(), 1, tt.sets...))
			term.ParsePDRs()

			rec := term.SensorAuxiliaryNames(1)
			require.NotNil(t, rec)
			assert.Equal(t, uint8(len(tt.sets)), rec.SensorCount)
			assert.Equal(t, tt.sets, rec.Names)
		})
	}
}

func TestParseTerminusName(t *testing.T) {
	term := New(1, 1)
	term.AppendPDR(entityS0)
	term.ParsePDRs()

	name, ok := term.Name()
	require.True(t, ok)
	assert.Equal(t, "S0", name)
	assert.Len(t, term.EntityAuxiliaryNames(), 1)
}

func TestParseUnsupportedRecordOnly(t *testing.T) {
	raw, err := pdr.NewBuilder().Raw(pdr.TypeNumericSensor, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	term := New(1, 1)
	term.AppendPDR(raw)
	report := term.ParsePDRs()

	assert.Equal(t, 1, report.Inert)
	assert.Zero(t, report.Decoded)
	assert.Zero(t, report.SkippedCount())

	_, ok := term.Name()
	assert.False(t, ok)
	for _, id := range []uint16{0, 1, 2, 0xffff} {
		assert.Nil(t, term.SensorAuxiliaryNames(id))
	}
	assert.Empty(t, term.SensorIDs())
}

func TestParseOverrunDoesNotAffectLaterRecords(t *testing.T) {
	b := pdr.NewBuilder()
	good := buildSensor(t, b, 7, names("en", "FAN"))

	term := New(1, 1)
	term.AppendPDR(overrun(sensorTemp1))
	term.AppendPDR(good)
	term.AppendPDR(entityS0)
	report := term.ParsePDRs()

	require.Equal(t, 1, report.SkippedCount())
	assert.Equal(t, 0, report.Skipped[0].Index)
	assert.ErrorIs(t, report.Skipped[0], pdr.ErrLengthOverrun)
	assert.Equal(t, 2, report.Decoded)

	assert.Nil(t, term.SensorAuxiliaryNames(1))
	require.NotNil(t, term.SensorAuxiliaryNames(7))
	name, ok := term.Name()
	assert.True(t, ok)
	assert.Equal(t, "S0", name)
}

func TestParseSkipsMalformedRecords(t *testing.T) {
	unterminated := []byte{
		0x1, 0x0, 0x0, 0x0, 0x1, 0x6, 0x0, 0x0, 10, 0x0,
		0x0, 0x0, 0x2, 0x0, 0x1, 0x1, 'e', 'n', 'u', 's',
	}
	zeroCount := []byte{
		0x2, 0x0, 0x0, 0x0, 0x1, 0x6, 0x0, 0x0, 5, 0x0,
		0x0, 0x0, 0x3, 0x0, 0x0,
	}

	term := New(1, 1)
	term.AppendPDR([]byte{0x1, 0x2, 0x3})
	term.AppendPDR(unterminated)
	term.AppendPDR(zeroCount)
	term.AppendPDR(sensorTemp1)
	report := term.ParsePDRs()

	require.Equal(t, 3, report.SkippedCount())
	assert.ErrorIs(t, report.Skipped[0], pdr.ErrTruncatedHeader)
	assert.ErrorIs(t, report.Skipped[1], pdr.ErrUnterminatedString)
	assert.ErrorIs(t, report.Skipped[2], pdr.ErrInvalidCount)
	assert.Equal(t, []uint16{1}, term.SensorIDs())
}

func TestParseIsIdempotent(t *testing.T) {
	b := pdr.NewBuilder()
	term := New(1, 1)
	term.AppendPDR(sensorTemp1)
	term.AppendPDR(buildSensor(t, b, 2, names("en", "VOLT"), names("de", "SPANNUNG")))
	term.AppendPDR(overrun(entityS0))
	term.AppendPDR(entityS0)

	first := term.ParsePDRs()
	info1 := term.Info()
	second := term.ParsePDRs()
	info2 := term.Info()

	assert.Equal(t, info1, info2)
	assert.Equal(t, first.Decoded, second.Decoded)
	assert.Equal(t, first.Inert, second.Inert)
	assert.Equal(t, first.Skipped, second.Skipped)
	assert.NotEqual(t, first.PassID, second.PassID)
}

func TestParseReplacesCaches(t *testing.T) {
	term := New(1, 1)
	term.AppendPDR(sensorTemp1)
	term.ParsePDRs()
	require.NotNil(t, term.SensorAuxiliaryNames(1))

	raw := term.PDRs()
	fresh := New(1, 1)
	fresh.AppendPDR(overrun(raw[0]))
	fresh.ParsePDRs()
	assert.Nil(t, fresh.SensorAuxiliaryNames(1))

	// A later pass only sees what the record set yields now.
	term.pdrs[0] = overrun(term.pdrs[0])
	term.ParsePDRs()
	assert.Nil(t, term.SensorAuxiliaryNames(1))
}

func TestParseNameRule(t *testing.T) {
	tests := []struct {
		name     string
		entities []pdr.Entity
		names    [][]pdr.LocalizedName
		want     string
		wantOK   bool
	}{
		{
			name:     "system in overall container",
			entities: []pdr.Entity{systemEntity()},
			names:    [][]pdr.LocalizedName{names("en", "BMC")},
			want:     "BMC",
			wantOK:   true,
		},
		{
			name:     "instance is not part of the rule",
			entities: []pdr.Entity{{Type: pdr.EntityTypeSystemLogical, Instance: 0, ContainerID: 0}},
			names:    [][]pdr.LocalizedName{names("en", "HOST")},
			want:     "HOST",
			wantOK:   true,
		},
		{
			name:     "system in another container",
			entities: []pdr.Entity{{Type: pdr.EntityTypeSystemLogical, Instance: 1, ContainerID: 5}},
			names:    [][]pdr.LocalizedName{names("en", "CARD")},
		},
		{
			name:     "different entity type",
			entities: []pdr.Entity{{Type: 0x0040, Instance: 1, ContainerID: 0}},
			names:    [][]pdr.LocalizedName{names("en", "PSU")},
		},
		{
			name:     "first name of first match",
			entities: []pdr.Entity{systemEntity(), systemEntity()},
			names:    [][]pdr.LocalizedName{names("en", "ONE", "fr", "UN"), names("en", "TWO")},
			want:     "ONE",
			wantOK:   true,
		},
		{
			name:     "empty name list is ignored",
			entities: []pdr.Entity{systemEntity(), systemEntity()},
			names:    [][]pdr.LocalizedName{nil, names("en", "LATE")},
			want:     "LATE",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := pdr.NewBuilder()
			term := New(1, 1)
			for i, e := range tt.entities {
				term.AppendPDR(buildEntity(t, b, e, tt.names[i]))
			}
			term.ParsePDRs()

			name, ok := term.Name()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestParseNonASCIIName(t *testing.T) {
	term := New(1, 1)
	term.AppendPDR(buildEntity(t, pdr.NewBuilder(), systemEntity(), names("de", "Lüfter")))
	term.ParsePDRs()

	name, ok := term.Name()
	require.True(t, ok)
	assert.Equal(t, "Lüfter", name)
}

func TestParseDuplicateSensorLaterRecordWins(t *testing.T) {
	b := pdr.NewBuilder()
	term := New(1, 1)
	term.AppendPDR(buildSensor(t, b, 3, names("en", "FIRST")))
	term.AppendPDR(buildSensor(t, b, 3, names("en", "SECOND")))
	report := term.ParsePDRs()

	assert.Equal(t, 2, report.Decoded)
	assert.Zero(t, report.Inert)
	assert.Equal(t, []uint16{3}, term.SensorIDs())
	rec := term.SensorAuxiliaryNames(3)
	require.NotNil(t, rec)
	assert.Equal(t, "SECOND", rec.Names[0][0].Name)
}

func TestParseEmptyRecordSet(t *testing.T) {
	term := New(1, 1)
	report := term.ParsePDRs()

	assert.Zero(t, report.Records)
	assert.Same(t, report, term.LastParse())
	_, ok := term.Name()
	assert.False(t, ok)
}

func TestParseEmitsProtocolEvents(t *testing.T) {
	plog := mocks.NewMockLogger(t)
	term := New(2, 1)
	term.SetProtocolLogger(plog)
	term.AppendPDR(sensorTemp1)
	term.AppendPDR(overrun(entityS0))

	var events []log.Event
	plog.EXPECT().Log(mock.Anything).Run(func(e log.Event) {
		events = append(events, e)
	}).Times(4)

	report := term.ParsePDRs()

	require.Len(t, events, 4)
	assert.Equal(t, log.CategoryState, events[0].Category)
	assert.Equal(t, PassStarted, events[0].StateChange.NewState)

	require.NotNil(t, events[1].Record)
	assert.Equal(t, log.OutcomeDecoded, events[1].Record.Outcome)
	assert.Equal(t, uint8(pdr.TypeSensorAuxiliaryNames), events[1].Record.Type)

	require.NotNil(t, events[2].Record)
	assert.Equal(t, log.OutcomeSkipped, events[2].Record.Outcome)
	assert.Equal(t, 1, events[2].Record.Index)
	assert.NotEmpty(t, events[2].Record.Reason)
	assert.Equal(t, overrun(entityS0), events[2].Record.Data)

	assert.Equal(t, PassCompleted, events[3].StateChange.NewState)
	for _, e := range events {
		assert.Equal(t, report.PassID, e.PassID)
		assert.Equal(t, uint8(2), e.TID)
	}
}
