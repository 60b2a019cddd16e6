// Package filesystem provides the filesystem gateway used by the size cache,
// the directory index and the browser.
//
// The gateway is a thin capability interface over OS file operations so the
// components above it can be exercised against an in-memory tree.
//
// Key types:
//   - Gateway: list, stat, canonicalize, create and remove paths
//   - Child: a directory entry as returned by ListChildren
//   - FileInfo: alias of fs.FileInfo
//
// Implementations:
//   - OSGateway: production implementation using the OS filesystem
//   - MemoryGateway: in-memory implementation with controllable mtimes,
//     symlinks, special files and call counters for tests
package filesystem
