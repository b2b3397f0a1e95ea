package pdr

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBuilderSensorAuxiliaryNamesMatchesVector(t *testing.T) {
	raw, err := NewBuilder().SetNextHandle(0x01000000).SensorAuxiliaryNames(&SensorAuxiliaryNames{
		SensorID: 1,
		Names: [][]LocalizedName{
			{{Tag: "en", Name: "TEMP1"}},
			{{Tag: "fr", Name: "TEMP2"}, {Tag: "fr", Name: "TEMP12"}},
		},
	})
	if err != nil {
		t.Fatalf("SensorAuxiliaryNames failed: %v", err)
	}
	if !bytes.Equal(raw, sensorTwoSubEntries) {
		t.Errorf("encoded\n% x\nwant\n% x", raw, sensorTwoSubEntries)
	}
}

func TestBuilderEntityAuxiliaryNamesMatchesVector(t *testing.T) {
	raw, err := NewBuilder().SetChangeNumber(1).EntityAuxiliaryNames(&EntityAuxiliaryNames{
		Entity: Entity{Type: EntityTypeSystemLogical, Instance: 1, ContainerID: ContainerIDSystem},
		Names:  []LocalizedName{{Tag: "en", Name: "S0"}},
	})
	if err != nil {
		t.Fatalf("EntityAuxiliaryNames failed: %v", err)
	}
	if !bytes.Equal(raw, entitySystemS0) {
		t.Errorf("encoded\n% x\nwant\n% x", raw, entitySystemS0)
	}
}

func TestBuilderAssignsSequentialHandles(t *testing.T) {
	b := NewBuilder()
	for want := uint32(1); want <= 3; want++ {
		raw, err := b.Raw(TypeOEM, nil)
		if err != nil {
			t.Fatalf("Raw failed: %v", err)
		}
		h, err := DecodeHeader(raw)
		if err != nil {
			t.Fatalf("DecodeHeader failed: %v", err)
		}
		if h.RecordHandle != want {
			t.Errorf("handle = %d, want %d", h.RecordHandle, want)
		}
	}
}

func TestBuilderDecodeNonASCII(t *testing.T) {
	in := &SensorAuxiliaryNames{
		TerminusHandle: 7,
		SensorID:       0x1234,
		Names:          [][]LocalizedName{{{Tag: "fr", Name: "Température"}, {Tag: "zh", Name: "温度"}}},
	}
	raw, err := NewBuilder().SensorAuxiliaryNames(in)
	if err != nil {
		t.Fatalf("SensorAuxiliaryNames failed: %v", err)
	}

	rec, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := rec.(*SensorAuxiliaryNames)
	if got.TerminusHandle != 7 || got.SensorID != 0x1234 || got.SensorCount != 1 {
		t.Errorf("got %+v", got)
	}
	if !reflect.DeepEqual(got.Names, in.Names) {
		t.Errorf("Names = %v, want %v", got.Names, in.Names)
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder()

	if _, err := b.SensorAuxiliaryNames(&SensorAuxiliaryNames{SensorID: 1}); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("no sub-entries: error = %v, want %v", err, ErrInvalidCount)
	}

	many := make([]LocalizedName, 256)
	for i := range many {
		many[i] = LocalizedName{Tag: "en", Name: "x"}
	}
	if _, err := b.EntityAuxiliaryNames(&EntityAuxiliaryNames{Names: many}); !errors.Is(err, ErrTooManyNames) {
		t.Errorf("256 names: error = %v, want %v", err, ErrTooManyNames)
	}

	if _, err := b.Raw(TypeOEM, make([]byte, 70000)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("large payload: error = %v, want %v", err, ErrPayloadTooLarge)
	}

	long := strings.Repeat("n", 40000)
	_, err := b.EntityAuxiliaryNames(&EntityAuxiliaryNames{Names: []LocalizedName{{Tag: "en", Name: long}}})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("long name: error = %v, want %v", err, ErrPayloadTooLarge)
	}
}
