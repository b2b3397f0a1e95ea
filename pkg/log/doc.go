// Package log provides structured decode-event logging for PLDM termini.
//
// This package defines the Logger interface and Event types for capturing
// what happened while a terminus' PDRs were decoded and its capabilities were
// queried. It is separate from operational logging (slog): the event log is a
// machine-readable trace of which records were decoded, which were skipped
// and why.
//
// # Basic Usage
//
// Attach a Logger to a terminus before running a decode pass:
//
//	// For development: log to console via slog
//	t.SetLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For later analysis: write to a binary file
//	fl, _ := log.NewFileLogger("/var/log/pldm/discovery.plog")
//	t.SetLogger(fl)
//
//	// Both: use MultiLogger
//	t.SetLogger(log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl))
//
// # Event Types
//
// Events are captured at three layers:
//   - Decoder: one RecordEvent per PDR (decoded, inert or skipped)
//   - Capability: capability queries (QueryEvent)
//   - Registry: decode pass and terminus lifecycle (StateChangeEvent)
//
// Errors that are not tied to one record have a dedicated ErrorEventData.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .plog extension.
// The pldm-pdr events command prints and filters them.
package log
