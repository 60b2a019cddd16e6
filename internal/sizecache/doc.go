// Package sizecache computes aggregate directory sizes and caches them
// across redraws and across runs.
//
// # Invalidation
//
// A cached directory size is trusted only while the directory's own
// modification time equals the mtime recorded when the size was computed.
// A directory's mtime changes when a direct child is added, removed or
// renamed, so any such change forces a full recomputation of that subtree.
//
// The check looks at one directory level only. A file rewritten deep inside
// an unchanged child subtree does not alter any ancestor's mtime on most
// filesystems, and the ancestor's cached size stays stale until one of its
// direct children changes. This is a known staleness window.
//
// # Exclusions
//
// Symlinks, special files (devices, pipes, sockets) and pseudo-filesystem
// roots such as /proc are sized as zero and never traversed.
//
// # Persistence
//
// Load and Save read and write the store as a flat little-endian binary file:
//
//	uint64 count
//	count × { uint64 pathLen, pathLen bytes, uint64 size, int64 mtimeUnixNano }
//
// Save writes atomically under an advisory file lock.
//
// # Thread Safety
//
// Cache is safe for concurrent use. Concurrent measurements of the same
// directory are collapsed into one walk.
package sizecache
