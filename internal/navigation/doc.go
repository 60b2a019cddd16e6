// Package navigation implements the browser's state machine.
//
// A State holds the current directory, its ordered entries, a selection
// cursor and the last user-visible error. Events (MoveUp, MoveDown,
// Activate, Back, Refresh, Quit) produce the next State; State is a value
// type and Handle never mutates its receiver.
//
// Invariants:
//   - 0 <= Selected < len(Entries) whenever Entries is non-empty, and
//     Selected == 0 otherwise
//   - CurrentPath is canonical and was an existing directory when it was set
//   - LastError is cleared by the next successful transition
//
// Errors never cross the boundary to the presentation layer as values:
// they are carried as plain strings in LastError. The only fatal condition
// is an invalid startup path, reported by New.
package navigation
