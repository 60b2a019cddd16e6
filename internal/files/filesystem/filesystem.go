package filesystem

import (
	"io/fs"
	"path/filepath"
	"time"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// Child is an immediate entry of a directory.
// Type carries only the type bits of the mode (fs.ModeType), which is what
// directory enumeration yields without an extra stat.
type Child struct {
	Name string
	Type fs.FileMode
}

// IsDir reports whether the child is a directory. Symlinks to directories
// report false.
func (c Child) IsDir() bool { return c.Type.IsDir() }

// IsSymlink reports whether the child is a symbolic link.
func (c Child) IsSymlink() bool { return c.Type&fs.ModeSymlink != 0 }

// IsRegular reports whether the child is a regular file.
func (c Child) IsRegular() bool { return c.Type.IsRegular() }

// Gateway is the capability interface over filesystem primitives.
type Gateway interface {
	// ListChildren returns the immediate children of a directory.
	// Errors wrap fs.ErrNotExist or fs.ErrPermission where applicable.
	ListChildren(path string) ([]Child, error)

	// Stat returns information about path, following symlinks.
	Stat(path string) (FileInfo, error)

	// Lstat returns information about path without following symlinks.
	Lstat(path string) (FileInfo, error)

	// Exists reports whether path resolves to an existing file or directory.
	Exists(path string) bool

	// ModTime returns the modification time of path.
	ModTime(path string) (time.Time, error)

	// IsSymlink reports whether path itself is a symbolic link.
	IsSymlink(path string) bool

	// IsSpecial reports whether path is neither a regular file, a directory
	// nor a symlink (devices, pipes, sockets).
	IsSpecial(path string) bool

	// FileSize returns the byte length of a regular file.
	FileSize(path string) (uint64, error)

	// Canonicalize returns the absolute path with symlinks resolved.
	// Fails if path does not resolve.
	Canonicalize(path string) (string, error)

	// Mkdir creates a single directory. Fails with fs.ErrExist if path exists.
	Mkdir(path string) error

	// Remove deletes path and everything below it.
	Remove(path string) error
}

// IsRoot reports whether path is a filesystem root ("/" or a volume root).
func IsRoot(path string) bool {
	clean := filepath.Clean(path)
	return filepath.Dir(clean) == clean
}

// IsSpecialMode reports whether mode describes a device, pipe, socket or
// other irregular file.
func IsSpecialMode(mode fs.FileMode) bool {
	if mode&fs.ModeSymlink != 0 {
		return false
	}
	return !mode.IsRegular() && !mode.IsDir()
}
