package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/lfm/internal/sizecache"
	"github.com/vvka-141/lfm/pkg/lfm"
)

type cliEnv struct {
	configDir string
	cacheFile string
}

// newCLIEnv points the user config, cache and state directories at
// temporary directories and forces non-interactive mode.
func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	configHome, cacheHome := t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	orig := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = orig })

	return cliEnv{
		configDir: filepath.Join(configHome, "lfm"),
		cacheFile: filepath.Join(cacheHome, "lfm", lfm.CacheFileName),
	}
}

func (e cliEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(content), 0644))
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// sampleTree creates:
//
//	root/
//	  .hidden
//	  b.txt      (5 bytes)
//	  sub/a.txt  (3 bytes)
func sampleTree(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "a.txt"), []byte("abc"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), nil, 0644))
	return root
}

func TestBrowse_NonInteractivePrintsListing(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)

	out, _, err := runCLI(t, "", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, root+":", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "  .."), "parent first: %q", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "  sub/"), "directories next: %q", lines[2])
	assert.Contains(t, lines[2], "3B")
	assert.True(t, strings.HasSuffix(lines[3], "  .hidden"))
	assert.True(t, strings.HasSuffix(lines[4], "  b.txt"))
}

func TestBrowse_InvalidStartPath(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(root, "nope")},
		{"regular file", filepath.Join(root, "b.txt")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, lfm.ErrStartupPathInvalid)
			assert.Equal(t, lfm.ExitStartupPathInvalid, lfm.ExitCodeForError(err))
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestLs_Hidden(t *testing.T) {
	root := sampleTree(t)

	tests := []struct {
		name       string
		config     string
		args       []string
		wantHidden bool
	}{
		{"default shows", "", nil, true},
		{"flag hides", "", []string{"--no-hidden"}, false},
		{"config hides", "show_hidden: false\n", nil, false},
		{"flag overrides config", "show_hidden: false\n", []string{"--hidden"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			if tt.config != "" {
				env.writeConfig(t, tt.config)
			}

			out, _, err := runCLI(t, "", append(append([]string{"ls"}, tt.args...), root)...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHidden, strings.Contains(out, ".hidden"))
			assert.Contains(t, out, "b.txt")
		})
	}
}

func TestLs_Bytes(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)

	out, _, err := runCLI(t, "", "ls", "--bytes", root)
	require.NoError(t, err)
	assert.Contains(t, out, "           5  b.txt")
	assert.Contains(t, out, "           3  sub/")
}

func TestSize_CachesDirectoriesAcrossRuns(t *testing.T) {
	env := newCLIEnv(t)
	root := sampleTree(t)
	sub := filepath.Join(root, "sub")

	out, _, err := runCLI(t, "", "size", "--bytes", sub, filepath.Join(root, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "3\t"+sub+"\n5\t"+filepath.Join(root, "b.txt")+"\n", out)

	store, err := sizecache.Load(env.cacheFile)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len(), "only directories are cached")
	e, ok := store.Get(sub)
	require.True(t, ok)
	assert.Equal(t, uint64(3), e.Size)

	out, _, err = runCLI(t, "", "cache", "stats", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries: 1")
	assert.Contains(t, out, sub)
}

func TestSize_NoCache(t *testing.T) {
	env := newCLIEnv(t)
	root := sampleTree(t)

	_, _, err := runCLI(t, "", "size", "--no-cache", root)
	require.NoError(t, err)
	assert.NoFileExists(t, env.cacheFile)
}

func TestSize_CustomCacheFile(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)
	cacheFile := filepath.Join(t.TempDir(), "custom.bin")

	_, _, err := runCLI(t, "", "size", "--cache-file", cacheFile, root)
	require.NoError(t, err)
	assert.FileExists(t, cacheFile)
}

func TestSize_MissingPath(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)
	missing := filepath.Join(root, "gone")

	out, errOut, err := runCLI(t, "", "size", root, missing)
	require.NoError(t, err)
	assert.Contains(t, out, "0B\t"+missing)
	assert.Contains(t, out, "8B\t"+root)
	assert.NotContains(t, errOut, "[ERROR]")
}

func TestSize_SymlinkIsZero(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(filepath.Join(root, "sub"), link))

	out, _, err := runCLI(t, "", "size", "--bytes", link)
	require.NoError(t, err)
	assert.Equal(t, "0\t"+link+"\n", out)
}

func TestSize_RequiresArgs(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "", "size")
	require.Error(t, err)
	assert.Equal(t, lfm.ExitUsageError, lfm.ExitCodeForError(err))
}

func TestMkdir(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)
	dir := filepath.Join(root, "new")

	out, _, err := runCLI(t, "", "mkdir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+dir)
	assert.DirExists(t, dir)

	_, _, err = runCLI(t, "", "mkdir", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, lfm.ErrAlreadyExists)
}

func TestRm_Confirmation(t *testing.T) {
	newCLIEnv(t)
	root := sampleTree(t)
	sub := filepath.Join(root, "sub")

	out, errOut, err := runCLI(t, "n\n", "rm", sub)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Remove "+sub)
	assert.Contains(t, out, "Cancelled.")
	assert.DirExists(t, sub)

	out, _, err = runCLI(t, "", "rm", sub)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.", "no answer means no")
	assert.DirExists(t, sub)

	out, _, err = runCLI(t, "y\n", "rm", sub)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed "+sub)
	assert.NoDirExists(t, sub)
}

func TestRm_ForceDropsCachedSizes(t *testing.T) {
	env := newCLIEnv(t)
	root := sampleTree(t)
	sub := filepath.Join(root, "sub")

	_, _, err := runCLI(t, "", "size", sub)
	require.NoError(t, err)

	_, _, err = runCLI(t, "", "rm", "--force", sub)
	require.NoError(t, err)
	assert.NoDirExists(t, sub)

	store, err := sizecache.Load(env.cacheFile)
	require.NoError(t, err)
	assert.Zero(t, store.Len())
}

func TestRm_Errors(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "", "rm", "--force", string(filepath.Separator))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing")

	_, _, err = runCLI(t, "", "rm", "--force", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot remove")
}

func TestCache_PruneAndClear(t *testing.T) {
	env := newCLIEnv(t)
	root := sampleTree(t)
	sub := filepath.Join(root, "sub")

	_, _, err := runCLI(t, "", "size", root, sub)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(sub))

	out, _, err := runCLI(t, "", "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 1 of 2 entries")

	// root changed when sub was removed
	out, _, err = runCLI(t, "", "cache", "prune", "--stale")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 1 of 1 entries")

	out, _, err = runCLI(t, "", "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")
	assert.NoFileExists(t, env.cacheFile)

	out, _, err = runCLI(t, "", "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries: 0")
	assert.Contains(t, out, "not created yet")
}

func TestCache_Disabled(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "", "cache", "stats", "--no-cache")
	require.ErrorIs(t, err, errCacheDisabled)
}

func TestCorruptCacheIsNotFatal(t *testing.T) {
	env := newCLIEnv(t)
	root := sampleTree(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(env.cacheFile), 0755))
	require.NoError(t, os.WriteFile(env.cacheFile, []byte{1, 2, 3}, 0644))

	out, errOut, err := runCLI(t, "", "size", "--bytes", root)
	require.NoError(t, err)
	assert.Equal(t, "8\t"+root+"\n", out)
	assert.Contains(t, errOut, "size cache persistence failed")

	// the next save replaces the corrupt file
	store, err := sizecache.Load(env.cacheFile)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestConfig_Errors(t *testing.T) {
	t.Run("malformed default config", func(t *testing.T) {
		env := newCLIEnv(t)
		env.writeConfig(t, "show_hidden: [oops\n")

		_, _, err := runCLI(t, "", "ls", t.TempDir())
		require.Error(t, err)
		assert.Equal(t, lfm.ExitConfigError, lfm.ExitCodeForError(err))
	})

	t.Run("explicit config missing", func(t *testing.T) {
		newCLIEnv(t)
		missing := filepath.Join(t.TempDir(), "none.yaml")

		_, _, err := runCLI(t, "", "ls", "--config", missing, t.TempDir())
		require.Error(t, err)
		assert.Equal(t, lfm.ExitConfigError, lfm.ExitCodeForError(err))
		assert.Contains(t, err.Error(), missing)
	})
}

func TestConfig_InitPathShow(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.configDir, "config.yaml")

	out, _, err := runCLI(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, _, err = runCLI(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration saved to "+path)
	assert.FileExists(t, path)

	out, _, err = runCLI(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, _, err = runCLI(t, "", "config", "show", "--no-hidden")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: "+path)
	assert.Contains(t, out, "show_hidden: false")
	assert.Contains(t, out, "- /proc")
	assert.Contains(t, out, "cache_file: "+env.cacheFile)
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "", "ls", "--bogus")
	require.Error(t, err)
	assert.Equal(t, lfm.ExitUsageError, lfm.ExitCodeForError(err))
}

func TestVersionCommand(t *testing.T) {
	newCLIEnv(t)

	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lfm "), "got %q", out)
}
