package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vvka-141/lfm/pkg/lfm"
)

var _ lfm.Logger = (*ConsoleLogger)(nil)

// ConsoleLogger writes log messages to a writer, stderr by default.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewWriterLogger(os.Stderr, verbose)
}

// NewWriterLogger creates a ConsoleLogger writing to w.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		out:     w,
	}
}

// OpenFileLogger appends log output to the file at path, creating parent
// directories as needed. The caller must close the returned closer.
func OpenFileLogger(path string, verbose bool) (*ConsoleLogger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewWriterLogger(f, verbose), f, nil
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

// NullLogger is a no-op logger that discards all log messages.
// Used when the browser runs without --verbose or --log-file.
type NullLogger struct{}

var _ lfm.Logger = (*NullLogger)(nil)

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}
