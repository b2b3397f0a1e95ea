package inspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/pldm-go/pldm-go/pkg/capability"
	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/pldm"
	"github.com/pldm-go/pldm-go/pkg/terminus"
)

func newTestInspector(t *testing.T) *Inspector {
	t.Helper()
	b := pdr.NewBuilder()

	sensor, err := b.SensorAuxiliaryNames(&pdr.SensorAuxiliaryNames{
		SensorID: 4,
		Names: [][]pdr.LocalizedName{
			{{Tag: "en", Name: "TEMP1"}},
			{{Tag: "fr", Name: "TEMP2"}, {Tag: "fr", Name: "TEMP12"}},
		},
	})
	if err != nil {
		t.Fatalf("encode sensor: %v", err)
	}
	entity, err := b.EntityAuxiliaryNames(&pdr.EntityAuxiliaryNames{
		Entity: pdr.Entity{Type: pdr.EntityTypeSystemLogical, Instance: 1},
		Names:  []pdr.LocalizedName{{Tag: "en", Name: "S0"}},
	})
	if err != nil {
		t.Fatalf("encode entity: %v", err)
	}

	term := terminus.New(1, capability.NewTypeSet(pldm.TypeBase, pldm.TypePlatform))
	term.SetSupportedCommands(capability.NewCommandSet(3).Set(pldm.TypePlatform, 0x11))
	term.AppendPDR(sensor)
	term.AppendPDR(entity)
	term.AppendPDR([]byte{0xde, 0xad})
	term.ParsePDRs()

	f := NewFormatter()
	f.ShowHandles = false
	return NewInspector(term, f)
}

func TestInspectorEvaluate(t *testing.T) {
	insp := newTestInspector(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"type/platform", []string{"type PLATFORM: supported"}},
		{"type/bios", []string{"type BIOS: not supported"}},
		{"cmd/platform/0x11", []string{"command 0x11: supported"}},
		{"cmd/platform/0x12", []string{"not supported", "command not supported"}},
		{"cmd/bios/0x01", []string{"not supported", "type not supported"}},
		{"cmd/platform/0xff", []string{"not supported", "out of range"}},
		{"sensor/4", []string{"sensor 4 (2 sub-entries)", `[0] en:"TEMP1"`, `[1] fr:"TEMP2" fr:"TEMP12"`}},
		{"name", []string{`"S0"`}},
		{"entities", []string{"[terminus]", `en:"S0"`}},
		{"pdr/1", []string{"pdr 1 (27 bytes)", "type=ENTITY_AUXILIARY_NAMES", `en:"S0"`}},
		{"pdr/2", []string{"pdr 2 (2 bytes)", "error:", "de ad"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := insp.EvaluateString(tt.query)
			if err != nil {
				t.Fatalf("EvaluateString(%q) failed: %v", tt.query, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("%q missing %q", got, w)
				}
			}
		})
	}
}

func TestInspectorAbsentValues(t *testing.T) {
	insp := newTestInspector(t)

	tests := []struct {
		query string
		want  error
	}{
		{"sensor/0", ErrSensorNotFound},
		{"pdr/3", ErrPDRNotFound},
		{"bogus", ErrInvalidQuery},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := insp.EvaluateString(tt.query)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	unnamed := NewInspector(terminus.New(2, 0), nil)
	if _, err := unnamed.EvaluateString("name"); !errors.Is(err, ErrNoName) {
		t.Errorf("got %v, want %v", err, ErrNoName)
	}
	if got, err := unnamed.EvaluateString("entities"); err != nil || got != "(no entity names)" {
		t.Errorf("got %q, %v", got, err)
	}
	if unnamed.Formatter() == nil {
		t.Error("nil formatter not defaulted")
	}
}
