package log

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// StreamLogger writes events as a CBOR stream to an io.Writer.
// It is safe for concurrent use from multiple goroutines.
type StreamLogger struct {
	mu      sync.Mutex
	w       io.Writer
	encoder *cbor.Encoder
	written int
	err     error
	closed  bool
}

// NewStreamLogger creates a StreamLogger writing to w.
func NewStreamLogger(w io.Writer) *StreamLogger {
	return &StreamLogger{w: w, encoder: NewEncoder(w)}
}

// Log encodes the event. Encoding errors are remembered, not returned;
// logging must not disrupt a decode pass.
func (l *StreamLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		if l.err == nil {
			l.err = err
		}
		return
	}
	l.written++
}

// Written returns the number of events successfully encoded.
func (l *StreamLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first encoding error, if any.
func (l *StreamLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close stops logging and closes the writer if it is an io.Closer.
// It is safe to call Close multiple times.
func (l *StreamLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if c, ok := l.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// FileLogger writes events to a .plog file.
type FileLogger struct {
	*StreamLogger
}

// NewFileLogger creates a FileLogger that appends to path. The file is
// created with permissions 0644 if it doesn't exist.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{StreamLogger: NewStreamLogger(f)}, nil
}

// Compile-time interface satisfaction checks.
var (
	_ Logger = (*StreamLogger)(nil)
	_ Logger = (*FileLogger)(nil)
)
