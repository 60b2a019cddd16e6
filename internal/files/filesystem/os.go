package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// OSGateway implements Gateway for the OS filesystem
type OSGateway struct{}

// NewOSGateway creates a new OS filesystem gateway
func NewOSGateway() *OSGateway {
	return &OSGateway{}
}

func (g *OSGateway) ListChildren(path string) ([]Child, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	children := make([]Child, 0, len(entries))
	for _, entry := range entries {
		children = append(children, Child{
			Name: entry.Name(),
			Type: entry.Type(),
		})
	}
	return children, nil
}

func (g *OSGateway) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

func (g *OSGateway) Lstat(path string) (FileInfo, error) {
	return os.Lstat(path)
}

func (g *OSGateway) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (g *OSGateway) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (g *OSGateway) IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeSymlink != 0
}

func (g *OSGateway) IsSpecial(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return IsSpecialMode(info.Mode())
}

func (g *OSGateway) FileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("not a regular file: %s", path)
	}
	return uint64(info.Size()), nil
}

func (g *OSGateway) Canonicalize(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return resolved, nil
}

func (g *OSGateway) Mkdir(path string) error {
	if _, err := os.Lstat(path); err == nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	return os.Mkdir(path, 0o755)
}

func (g *OSGateway) Remove(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	return os.RemoveAll(path)
}
