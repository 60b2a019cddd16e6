package tui

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/lfm/internal/dirindex"
	"github.com/vvka-141/lfm/internal/sizecache"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name string
		in   sizecache.Result
		want string
	}{
		{"zero", sizecache.Result{Known: true}, "0B (0 bytes)"},
		{"bytes", sizecache.Result{Bytes: 512, Known: true}, "512B (512 bytes)"},
		{"mebibytes", sizecache.Result{Bytes: 1572864, Known: true}, "1.5MiB (1572864 bytes)"},
		{"failed renders zero", sizecache.Result{Err: errors.New("denied")}, "0B (0 bytes)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.in))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "directory", KindOf(fs.ModeDir|0o755))
	assert.Equal(t, "file", KindOf(0o644))
	assert.Equal(t, "symlink", KindOf(fs.ModeSymlink|0o777))
	assert.Equal(t, "pipe", KindOf(fs.ModeNamedPipe))
	assert.Equal(t, "socket", KindOf(fs.ModeSocket))
	assert.Equal(t, "device", KindOf(fs.ModeDevice|fs.ModeCharDevice))
}

func TestEntryLabel(t *testing.T) {
	assert.Equal(t, "..", EntryLabel(dirindex.Entry{Name: "..", IsParent: true, IsDir: true}))
	assert.Equal(t, "src/", EntryLabel(dirindex.Entry{Name: "src", IsDir: true}))
	assert.Equal(t, "main.go", EntryLabel(dirindex.Entry{Name: "main.go"}))
	assert.Equal(t, "cfg@ → /etc/cfg/", EntryLabel(dirindex.Entry{Name: "cfg", IsDir: true, LinkTarget: "/etc/cfg"}))
	assert.Equal(t, "f@ → /x/f", EntryLabel(dirindex.Entry{Name: "f", LinkTarget: "/x/f"}))
}
