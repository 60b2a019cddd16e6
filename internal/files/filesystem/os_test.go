package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSGateway_ListChildren(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "link")))

	g := NewOSGateway()
	children, err := g.ListChildren(dir)
	require.NoError(t, err)

	byName := map[string]Child{}
	for _, c := range children {
		byName[c.Name] = c
	}
	require.Len(t, byName, 3)
	assert.True(t, byName["sub"].IsDir())
	assert.True(t, byName["a.txt"].IsRegular())
	assert.True(t, byName["link"].IsSymlink())
	assert.False(t, byName["link"].IsDir(), "symlink to directory must not report as directory")
}

func TestOSGateway_ListChildren_Nonexistent(t *testing.T) {
	g := NewOSGateway()
	_, err := g.ListChildren(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOSGateway_FileSize(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("12345"), 0o644))

	g := NewOSGateway()
	size, err := g.FileSize(file)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), size)

	_, err = g.FileSize(dir)
	assert.Error(t, err, "FileSize(dir) should fail")
}

func TestOSGateway_SymlinkAndSpecial(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	g := NewOSGateway()
	assert.True(t, g.IsSymlink(link))
	assert.False(t, g.IsSymlink(target))
	assert.False(t, g.IsSpecial(link))
	assert.False(t, g.IsSpecial(target))
	assert.False(t, g.IsSpecial(dir))

	fifo := filepath.Join(dir, "fifo")
	if err := syscall.Mkfifo(fifo, 0o644); err != nil {
		t.Skipf("mkfifo unsupported: %v", err)
	}
	assert.True(t, g.IsSpecial(fifo))
}

func TestOSGateway_Canonicalize(t *testing.T) {
	dir := t.TempDir()
	realDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	sub := filepath.Join(realDir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.Symlink(sub, filepath.Join(realDir, "alias")))

	g := NewOSGateway()

	got, err := g.Canonicalize(filepath.Join(realDir, "alias", "..", "sub"))
	require.NoError(t, err)
	assert.Equal(t, sub, got)

	got, err = g.Canonicalize(filepath.Join(realDir, "alias"))
	require.NoError(t, err)
	assert.Equal(t, sub, got)

	_, err = g.Canonicalize(filepath.Join(realDir, "missing"))
	assert.Error(t, err)
}

func TestOSGateway_MkdirAndRemove(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "new")

	g := NewOSGateway()
	require.NoError(t, g.Mkdir(target))
	assert.True(t, g.Exists(target))

	err := g.Mkdir(target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist))

	require.NoError(t, os.WriteFile(filepath.Join(target, "f"), []byte("x"), 0o644))
	require.NoError(t, g.Remove(target))
	assert.False(t, g.Exists(target))

	assert.Error(t, g.Remove(target), "removing a missing path should fail")
}

func TestIsRoot(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/a", false},
		{"/a/b/..", false},
		{"/a/..", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRoot(tt.path))
		})
	}
}
