// Command pldm-pdr decodes the Platform Descriptor Records of PLDM termini.
//
// Termini are described by YAML fixtures holding a TID, the supported PLDM
// types and commands, and the raw PDRs as captured from the terminus.
//
// Usage:
//
//	pldm-pdr <command> [flags] <fixture.yaml...>
//
// Commands:
//
//	decode   Run the decode pass and print termini and reports
//	query    Answer capability and name queries
//	export   Write a terminus snapshot (CBOR or JSON)
//	events   Print a protocol event log
//	shell    Inspect one terminus interactively
//
// Examples:
//
//	# Decode two termini, two passes at a time, and log events
//	pldm-pdr decode -jobs 2 -protocol-log pass.plog bmc.yaml nic.yaml
//
//	# Ask whether PLATFORM command 0x11 is supported
//	pldm-pdr query -q cmd/platform/0x11 -q name bmc.yaml
//
//	# Show only skipped records of a pass log
//	pldm-pdr events -outcome skipped -raw pass.plog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/pldm-go/pldm-go/cmd/pldm-pdr/commands"
	"github.com/pldm-go/pldm-go/cmd/pldm-pdr/interactive"
	"github.com/pldm-go/pldm-go/pkg/log"
)

const usage = `pldm-pdr - PLDM Terminus PDR Decoder

Usage:
  pldm-pdr <command> [flags] <fixture.yaml...>

Commands:
  decode   Run the decode pass and print termini and reports
  query    Answer capability and name queries
  export   Write a terminus snapshot (CBOR or JSON)
  events   Print a protocol event log
  shell    Inspect one terminus interactively

Use "pldm-pdr <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "decode":
		runDecode(args)
	case "query":
		runQuery(args)
	case "export":
		runExport(args)
	case "events":
		runEvents(args)
	case "shell":
		runShell(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// multiFlag collects a repeated string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// commonFlags are shared by the commands that load fixtures.
type commonFlags struct {
	protocolLog *string
	verbose     *bool
	jobs        *int
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		protocolLog: fs.String("protocol-log", "", "Write decode events to a CBOR log file"),
		verbose:     fs.Bool("v", false, "Enable debug logging"),
		jobs:        fs.Int("jobs", 0, "Maximum concurrent decode passes (0 = unlimited)"),
	}
}

// decodeOptions builds decode options from the common flags. With -v,
// protocol events are also written to the debug log. The returned function
// closes the protocol log.
func (c commonFlags) decodeOptions() (commands.DecodeOptions, func()) {
	level := slog.LevelInfo
	if *c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opts := commands.DecodeOptions{
		Jobs:   *c.jobs,
		Logger: logger,
	}

	var sinks []log.Logger
	if *c.verbose {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}

	closeLog := func() {}
	if *c.protocolLog != "" {
		fl, err := log.NewFileLogger(*c.protocolLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open protocol log: %v\n", err)
			os.Exit(1)
		}
		sinks = append(sinks, fl)
		closeLog = func() {
			if err := fl.Err(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: protocol log incomplete: %v\n", err)
			}
			if err := fl.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close protocol log: %v\n", err)
			}
		}
	}

	switch len(sinks) {
	case 0:
	case 1:
		opts.ProtocolLogger = sinks[0]
	default:
		opts.ProtocolLogger = log.NewMultiLogger(sinks...)
	}
	return opts, closeLog
}

func requireFixtures(fs *flag.FlagSet) []string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: fixture file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Args()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pldm-pdr decode - Run the decode pass and print termini and reports

Usage:
  pldm-pdr decode [flags] <fixture.yaml...>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "text", "Output format (text, json)")
	raw := fs.Bool("raw", false, "Include hex dumps of skipped records")
	common := addCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	paths := requireFixtures(fs)

	opts, closeLog := common.decodeOptions()
	opts.Format = *format
	opts.ShowRaw = *raw

	ctx, cancel := signalContext()
	err := commands.RunDecode(ctx, paths, opts, os.Stdout)
	cancel()
	closeLog()
	if err != nil {
		fail(err)
	}
}

func runQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pldm-pdr query - Answer capability and name queries

Usage:
  pldm-pdr query [flags] -q <query> <fixture.yaml...>

Queries:
  type/<type>            Is a PLDM type supported
  cmd/<type>/<command>   Is a command supported (with the reason if not)
  sensor/<id>            Names of a sensor
  name                   Terminus name
  pdr/<index>            Decode and dump one record
  entities               Decoded entity names

Flags:
`)
		fs.PrintDefaults()
	}

	var queries multiFlag
	fs.Var(&queries, "q", "Query to evaluate (repeatable)")
	tid := fs.Uint("tid", 0, "Terminus to query when several fixtures are given")
	common := addCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	paths := requireFixtures(fs)
	if len(queries) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one -q query required")
		fs.Usage()
		os.Exit(1)
	}
	if *tid > 0xff {
		fail(fmt.Errorf("tid %d out of range", *tid))
	}

	opts, closeLog := common.decodeOptions()
	err := commands.RunQuery(paths, queries, commands.QueryOptions{TID: uint8(*tid), DecodeOptions: opts}, os.Stdout)
	closeLog()
	if err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pldm-pdr export - Write a terminus snapshot

Usage:
  pldm-pdr export [flags] -o <out> <fixture.yaml...>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	format := fs.String("format", "cbor", "Snapshot format (cbor, json)")
	tid := fs.Uint("tid", 0, "Terminus to export when several fixtures are given")
	common := addCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	paths := requireFixtures(fs)
	if *tid > 0xff {
		fail(fmt.Errorf("tid %d out of range", *tid))
	}

	opts, closeLog := common.decodeOptions()
	ctx, cancel := signalContext()
	err := commands.RunExport(ctx, paths, commands.ExportOptions{
		Output:        *output,
		Format:        *format,
		TID:           uint8(*tid),
		DecodeOptions: opts,
	})
	cancel()
	closeLog()
	if err != nil {
		fail(err)
	}
}

func runEvents(args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pldm-pdr events - Print a protocol event log

Usage:
  pldm-pdr events [flags] <file.plog>

Flags:
`)
		fs.PrintDefaults()
	}

	tid := fs.Int("tid", -1, "Filter by terminus")
	pass := fs.String("pass", "", "Filter by decode pass ID")
	layer := fs.String("layer", "", "Filter by layer (decoder, capability, registry)")
	category := fs.String("category", "", "Filter by category (record, query, state, error)")
	outcome := fs.String("outcome", "", "Filter record events by outcome (decoded, inert, skipped)")
	raw := fs.Bool("raw", false, "Include record bytes")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.EventsOptions{ShowRaw: *raw}
	opts.Filter.PassID = *pass

	if *tid >= 0 {
		if *tid > 0xff {
			fail(fmt.Errorf("tid %d out of range", *tid))
		}
		v := uint8(*tid)
		opts.Filter.TID = &v
	}
	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		opts.Filter.Layer = &l
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		opts.Filter.Category = &c
	}
	if *outcome != "" {
		o, err := commands.ParseOutcomeFlag(*outcome)
		if err != nil {
			fail(err)
		}
		opts.Filter.Outcome = &o
	}

	if err := commands.RunEvents(fs.Arg(0), opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runShell(args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pldm-pdr shell - Inspect one terminus interactively

Usage:
  pldm-pdr shell [flags] <fixture.yaml...>

Flags:
`)
		fs.PrintDefaults()
	}

	tid := fs.Uint("tid", 0, "Terminus to open when several fixtures are given")
	common := addCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	paths := requireFixtures(fs)
	if *tid > 0xff {
		fail(fmt.Errorf("tid %d out of range", *tid))
	}

	opts, closeLog := common.decodeOptions()
	defer closeLog()

	t, err := commands.OpenTerminus(paths, uint8(*tid), opts)
	if err != nil {
		closeLog()
		fail(err)
	}

	sh, err := interactive.New(t)
	if err != nil {
		closeLog()
		fail(err)
	}
	sh.Run()
}
