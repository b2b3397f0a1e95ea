// Package interactive provides the interactive shell of pldm-pdr.
package interactive

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pldm-go/pldm-go/pkg/inspect"
	"github.com/pldm-go/pldm-go/pkg/terminus"
)

// Shell runs inspection commands against one terminus.
type Shell struct {
	terminus  *terminus.Terminus
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance
}

// New creates a shell reading from the terminal.
func New(t *terminus.Terminus) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("tid %d> ", t.TID()),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(t)
	s.rl = rl
	return s, nil
}

func newShell(t *terminus.Terminus) *Shell {
	f := inspect.NewFormatter()
	return &Shell{
		terminus:  t,
		inspector: inspect.NewInspector(t, f),
		formatter: f,
	}
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("info"),
		readline.PcItem("type"),
		readline.PcItem("cmd"),
		readline.PcItem("sensor"),
		readline.PcItem("sensors"),
		readline.PcItem("name"),
		readline.PcItem("entities"),
		readline.PcItem("pdrs"),
		readline.PcItem("pdr"),
		readline.PcItem("parse"),
		readline.PcItem("raw"),
		readline.PcItem("query"),
		readline.PcItem("quit"),
	)
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It returns on quit or EOF.
func (s *Shell) Run() {
	defer s.rl.Close()

	w := s.rl.Stdout()
	s.printHelp(w)

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(w, "Exiting...")
			return
		}
		if !s.Execute(line, w) {
			fmt.Fprintln(w, "Exiting...")
			return
		}
	}
}

// Execute runs one command line and writes its output to w. It returns
// false when the shell should exit.
func (s *Shell) Execute(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "info", "i":
		fmt.Fprint(w, s.formatter.FormatTerminus(s.terminus.Info()))

	case "type":
		s.query(w, "type", args, 1)

	case "cmd":
		s.query(w, "cmd", args, 2)

	case "sensor":
		s.query(w, "sensor", args, 1)

	case "sensors":
		s.cmdSensors(w)

	case "name":
		s.query(w, "name", args, 0)

	case "entities":
		s.query(w, "entities", args, 0)

	case "pdrs":
		s.cmdPDRs(w)

	case "pdr":
		s.query(w, "pdr", args, 1)

	case "parse", "p":
		report := s.terminus.ParsePDRs()
		fmt.Fprint(w, s.formatter.FormatReport(report, s.terminus.PDRs()))

	case "raw":
		s.formatter.ShowRaw = !s.formatter.ShowRaw
		fmt.Fprintf(w, "raw output %s\n", onOff(s.formatter.ShowRaw))

	case "query", "q":
		if len(args) != 1 {
			fmt.Fprintln(w, "Usage: query <expression>")
			return true
		}
		s.evaluate(w, args[0])

	case "quit", "exit":
		return false

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

// query builds a query expression from a command and its arguments.
func (s *Shell) query(w io.Writer, kind string, args []string, want int) {
	if len(args) != want {
		fmt.Fprintf(w, "Usage: %s\n", usageFor(kind))
		return
	}
	s.evaluate(w, strings.Join(append([]string{kind}, args...), "/"))
}

func (s *Shell) evaluate(w io.Writer, expr string) {
	out, err := s.inspector.EvaluateString(expr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, out)
}

func (s *Shell) cmdSensors(w io.Writer) {
	ids := s.terminus.SensorIDs()
	if len(ids) == 0 {
		fmt.Fprintln(w, "(no sensors)")
		return
	}
	for _, id := range ids {
		fmt.Fprint(w, s.formatter.FormatSensor(s.terminus.SensorAuxiliaryNames(id)))
	}
}

func (s *Shell) cmdPDRs(w io.Writer) {
	pdrs := s.terminus.PDRs()
	fmt.Fprintf(w, "%d records\n", len(pdrs))
	for i, raw := range pdrs {
		fmt.Fprintf(w, "  [%d] %d bytes\n", i, len(raw))
	}
}

func usageFor(kind string) string {
	switch kind {
	case "type":
		return "type <type>"
	case "cmd":
		return "cmd <type> <command>"
	case "sensor":
		return "sensor <id>"
	case "pdr":
		return "pdr <index>"
	default:
		return kind
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
PLDM Terminus Commands:
  Capabilities:
    type <type>          - Is a PLDM type supported (name or number)
    cmd <type> <command> - Is a command supported, with the reason if not

  Records:
    info                 - Show the terminus and its decoded names
    sensor <id>          - Show the names of one sensor
    sensors              - Show all sensors with names
    name                 - Show the terminus name
    entities             - Show decoded entity names
    pdrs                 - List raw records
    pdr <index>          - Decode and dump one record
    parse                - Run the decode pass again
    raw                  - Toggle hex dumps of skipped records
    query <expr>         - Evaluate a query expression (e.g. cmd/platform/0x11)

  Other:
    help                 - Show this help
    quit                 - Exit`)
}
