// Package logging provides concrete implementations of the lfm.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to an io.Writer (stderr by
//     default, a log file while the full-screen browser owns the terminal)
//   - NullLogger: Discards all messages
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
