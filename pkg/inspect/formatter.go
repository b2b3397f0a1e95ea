package inspect

import (
	"fmt"
	"strings"
	"time"

	"github.com/pldm-go/pldm-go/pkg/capability"
	"github.com/pldm-go/pldm-go/pkg/log"
	"github.com/pldm-go/pldm-go/pkg/pdr"
	"github.com/pldm-go/pldm-go/pkg/pldm"
	"github.com/pldm-go/pldm-go/pkg/terminus"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowHandles includes record handles alongside record contents
	ShowHandles bool

	// ShowRaw includes hex dumps of skipped records
	ShowRaw bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowHandles: true,
		ShowRaw:     false,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatTypes formats a supported types mask as a list of type names.
func FormatTypes(types capability.TypeSet) string {
	list := types.Types()
	if len(list) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, FormatType(t))
	}
	return strings.Join(names, ", ")
}

// FormatType formats a PLDM type for display.
func FormatType(t pldm.Type) string {
	if name := t.String(); name != "UNKNOWN" {
		return name
	}
	return fmt.Sprintf("TYPE(%d)", t)
}

// FormatCommands formats the set commands of one type.
func FormatCommands(cmds capability.CommandSet, t pldm.Type) string {
	var set []string
	for c := 0; c < capability.BytesPerType*8; c++ {
		if cmds.Supports(t, uint8(c)) {
			set = append(set, fmt.Sprintf("0x%02x", c))
		}
	}
	if len(set) == 0 {
		return "(none)"
	}
	return strings.Join(set, " ")
}

// FormatEntity formats an entity ID triple.
func FormatEntity(e pdr.Entity) string {
	kind := "physical"
	if e.Type&pdr.EntityTypeLogicalBit != 0 {
		kind = "logical"
	}
	s := fmt.Sprintf("type=0x%04x (%s) instance=%d container=%d", e.Type, kind, e.Instance, e.ContainerID)
	if e.IsOverallSystem() {
		s += " [terminus]"
	}
	return s
}

// FormatNames formats localized names as tag:"name" pairs.
func FormatNames(names []pdr.LocalizedName) string {
	if len(names) == 0 {
		return "(no names)"
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s:%q", n.Tag, n.Name))
	}
	return strings.Join(parts, " ")
}

// FormatHex formats bytes as space-separated hex, 16 bytes per line.
func FormatHex(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			if i%16 == 0 {
				sb.WriteString("\n")
			} else {
				sb.WriteString(" ")
			}
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}

// FormatSensor formats a sensor's names, one line per sub-entry.
func (f *Formatter) FormatSensor(s *pdr.SensorAuxiliaryNames) string {
	var sb strings.Builder
	f.writeSensor(&sb, 0, s)
	return sb.String()
}

func (f *Formatter) writeSensor(sb *strings.Builder, depth int, s *pdr.SensorAuxiliaryNames) {
	header := fmt.Sprintf("sensor %d (%d sub-entries)", s.SensorID, s.SensorCount)
	if f.ShowHandles {
		header += fmt.Sprintf(" handle=%d", s.Header().RecordHandle)
	}
	sb.WriteString(f.Indent(depth, header+"\n"))
	for i, names := range s.Names {
		sb.WriteString(f.Indent(depth+1, fmt.Sprintf("[%d] %s\n", i, FormatNames(names))))
	}
}

// FormatEntityNames formats an Entity Auxiliary Names record.
func (f *Formatter) FormatEntityNames(e *pdr.EntityAuxiliaryNames) string {
	line := FormatEntity(e.Entity) + ": " + FormatNames(e.Names)
	if f.ShowHandles {
		line += fmt.Sprintf(" handle=%d", e.Header().RecordHandle)
	}
	return line + "\n"
}

// FormatTerminus formats a terminus snapshot.
func (f *Formatter) FormatTerminus(info *terminus.Info) string {
	var sb strings.Builder

	name := "(unnamed)"
	if info.Name != nil {
		name = fmt.Sprintf("%q", *info.Name)
	}
	fmt.Fprintf(&sb, "terminus %d %s\n", info.TID, name)
	sb.WriteString(f.Indent(1, "types: "+FormatTypes(info.SupportedTypes)+"\n"))
	for _, t := range info.SupportedTypes.Types() {
		sb.WriteString(f.Indent(2, FormatType(t)+": "+FormatCommands(info.SupportedCommands, t)+"\n"))
	}
	sb.WriteString(f.Indent(1, fmt.Sprintf("pdrs: %d\n", info.PDRCount)))

	if len(info.Sensors) > 0 {
		sb.WriteString(f.Indent(1, "sensors:\n"))
		for _, s := range info.Sensors {
			f.writeSensor(&sb, 2, s)
		}
	}
	if len(info.Entities) > 0 {
		sb.WriteString(f.Indent(1, "entities:\n"))
		for _, e := range info.Entities {
			sb.WriteString(f.Indent(2, f.FormatEntityNames(e)))
		}
	}
	return sb.String()
}

// FormatReport formats a decode pass report. raw is the terminus' record set
// and is only used when ShowRaw is set.
func (f *Formatter) FormatReport(r *terminus.ParseReport, raw [][]byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pass %s: %d records, %d decoded, %d inert, %d skipped (%s)\n",
		r.PassID, r.Records, r.Decoded, r.Inert, r.SkippedCount(), r.Duration.Round(time.Microsecond))

	for _, re := range r.Skipped {
		sb.WriteString(f.Indent(1, "skipped "+re.Error()+"\n"))
		if f.ShowRaw && re.Index >= 0 && re.Index < len(raw) {
			for _, line := range strings.Split(FormatHex(raw[re.Index]), "\n") {
				sb.WriteString(f.Indent(2, line+"\n"))
			}
		}
	}
	return sb.String()
}

// FormatEvent formats one decode event as a single line.
func (f *Formatter) FormatEvent(e log.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s tid=%d %-10s %-6s", e.Timestamp.Format("15:04:05.000000"), e.TID, e.Layer, e.Category)
	if e.PassID != "" {
		fmt.Fprintf(&sb, " pass=%s", shortID(e.PassID))
	}

	switch {
	case e.Record != nil:
		r := e.Record
		fmt.Fprintf(&sb, " #%d %s", r.Index, r.Outcome)
		if f.ShowHandles {
			fmt.Fprintf(&sb, " handle=%d", r.Handle)
		}
		fmt.Fprintf(&sb, " type=%s size=%d", pdr.Type(r.Type), r.Size)
		if r.Reason != "" {
			fmt.Fprintf(&sb, " reason=%q", r.Reason)
		}
		if f.ShowRaw && len(r.Data) > 0 {
			fmt.Fprintf(&sb, " data=%x", r.Data)
			if r.Truncated {
				sb.WriteString("...")
			}
		}
	case e.Query != nil:
		q := e.Query
		fmt.Fprintf(&sb, " type=%s", FormatType(pldm.Type(q.Type)))
		if q.Command != nil {
			fmt.Fprintf(&sb, " cmd=0x%02x", *q.Command)
		}
		fmt.Fprintf(&sb, " supported=%t", q.Supported)
		if q.Reason != "" {
			fmt.Fprintf(&sb, " reason=%q", q.Reason)
		}
	case e.StateChange != nil:
		s := e.StateChange
		fmt.Fprintf(&sb, " %s", s.Entity)
		if s.OldState != "" {
			fmt.Fprintf(&sb, " %s ->", s.OldState)
		}
		fmt.Fprintf(&sb, " %s", s.NewState)
		if s.Reason != "" {
			fmt.Fprintf(&sb, " (%s)", s.Reason)
		}
	case e.Error != nil:
		fmt.Fprintf(&sb, " %s: %s", e.Error.Layer, e.Error.Message)
		if e.Error.Context != "" {
			fmt.Fprintf(&sb, " [%s]", e.Error.Context)
		}
	}
	return sb.String()
}

// shortID returns the first 8 characters of a UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
