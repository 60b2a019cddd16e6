package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/lfm/pkg/lfm"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `cache_file: /tmp/lfm/cache.bin
show_hidden: false
excluded_roots:
  - /proc
  - /mnt/nfs
confirm_delete: true
log_file: /tmp/lfm.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/tmp/lfm/cache.bin", cfg.CacheFile)
	require.NotNil(t, cfg.ShowHidden)
	assert.False(t, *cfg.ShowHidden)
	assert.Equal(t, []string{"/proc", "/mnt/nfs"}, cfg.ExcludedRoots)
	require.NotNil(t, cfg.ConfirmDelete)
	assert.True(t, *cfg.ConfirmDelete)
	assert.Equal(t, "/tmp/lfm.log", cfg.LogFile)
}

func TestLoad_MinimalYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "show_hidden: true\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.ShowHidden)
	assert.True(t, *cfg.ShowHidden)
	assert.Nil(t, cfg.ConfirmDelete)
	assert.Empty(t, cfg.CacheFile)
	assert.Nil(t, cfg.ExcludedRoots)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "{{invalid"},
		{"unknown key", "cache_fiel: /tmp/x\n"},
		{"wrong type", "show_hidden: [1, 2]\n"},
		{"relative excluded root", "excluded_roots: [proc]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, lfm.ErrInvalidConfig)
			assert.Equal(t, lfm.ExitConfigError, lfm.ExitCodeForError(err))
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Config{}, *cfg)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	hidden := true
	in := &Config{CacheFile: "/c.bin", ShowHidden: &hidden, ExcludedRoots: []string{"/proc"}}

	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_CACHE_HOME", "/cache")
	t.Setenv("XDG_STATE_HOME", "/state")
	if _, err := os.UserConfigDir(); err != nil {
		t.Skip("no user config dir on this platform")
	}

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "lfm", filepath.Base(filepath.Dir(p)))
	assert.Equal(t, ConfigFileName, filepath.Base(p))

	c, err := DefaultCacheFile()
	require.NoError(t, err)
	assert.Equal(t, lfm.CacheFileName, filepath.Base(c))

	l, err := DefaultLogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/state", "lfm", "lfm.log"), l)
}
