package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes decode events to an slog.Logger.
// Useful for development when you want to see decode events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Skipped records and errors are
// logged at Warn level, everything else at Debug level.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.Uint64("tid", uint64(event.TID)),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.PassID != "" {
		attrs = append(attrs, slog.String("pass_id", event.PassID))
	}

	// Add type-specific attributes
	switch {
	case event.Record != nil:
		attrs = append(attrs,
			slog.Int("index", event.Record.Index),
			slog.Uint64("handle", uint64(event.Record.Handle)),
			slog.Uint64("pdr_type", uint64(event.Record.Type)),
			slog.Int("size", event.Record.Size),
			slog.String("outcome", event.Record.Outcome.String()),
		)
		if event.Record.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Record.Reason))
		}
		if event.Record.Outcome == OutcomeSkipped {
			level = slog.LevelWarn
		}
	case event.Query != nil:
		attrs = append(attrs,
			slog.Uint64("type", uint64(event.Query.Type)),
			slog.Bool("supported", event.Query.Supported),
		)
		if event.Query.Command != nil {
			attrs = append(attrs, slog.Uint64("command", uint64(*event.Query.Command)))
		}
		if event.Query.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Query.Reason))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "pldm", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
