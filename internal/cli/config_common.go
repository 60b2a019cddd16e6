package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/config"
	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/internal/logging"
	"github.com/vvka-141/lfm/internal/sizecache"
	"github.com/vvka-141/lfm/pkg/lfm"
)

// settings is the effective configuration of one command run.
type settings struct {
	verbose       bool
	configPath    string
	cacheFile     string // empty when the cache file is disabled
	showHidden    bool
	excludedRoots []string
	confirmDelete bool
	logFile       string
}

// resolveSettings merges flags, the config file and the defaults.
// Priority (highest to lowest): flags > config file > defaults
func resolveSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()
	s := settings{
		verbose:       getVerboseFlag(cmd),
		showHidden:    true,
		confirmDelete: true,
	}

	cfg, path, err := loadUserConfig(cmd)
	if err != nil {
		return s, err
	}
	s.configPath = path

	// Second: config file
	if cfg.ShowHidden != nil {
		s.showHidden = *cfg.ShowHidden
	}
	if cfg.ConfirmDelete != nil {
		s.confirmDelete = *cfg.ConfirmDelete
	}
	s.excludedRoots = cfg.ExcludedRoots
	s.cacheFile = cfg.CacheFile
	s.logFile = cfg.LogFile

	// Third: flags
	if flags.Changed("hidden") {
		s.showHidden, _ = flags.GetBool("hidden")
	}
	if flags.Changed("no-hidden") {
		noHidden, _ := flags.GetBool("no-hidden")
		s.showHidden = !noHidden
	}
	if v, _ := flags.GetString("cache-file"); v != "" {
		s.cacheFile = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		s.logFile = v
	}

	if s.cacheFile == "" {
		if s.cacheFile, err = config.DefaultCacheFile(); err != nil && s.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] %v; size cache will not be saved\n", err)
		}
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		s.cacheFile = ""
	}
	if s.logFile == "" && s.verbose {
		s.logFile, _ = config.DefaultLogFile()
	}

	if s.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] config=%s cache=%s hidden=%t\n",
			displayOrNone(s.configPath), displayOrNone(s.cacheFile), s.showHidden)
	}
	return s, nil
}

// loadUserConfig loads the config file named by --config, or the default
// one. A missing default file is not an error; a missing explicit one is.
func loadUserConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return &config.Config{}, "", nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if explicit {
				return nil, path, fmt.Errorf("%w: %s does not exist", lfm.ErrInvalidConfig, path)
			}
			return &config.Config{}, "", nil // Config file not found is not an error
		}
		return nil, path, err
	}
	return cfg, path, nil
}

// openLogger returns the logger for a command. Log files are used when
// configured; otherwise commands log to stderr, except the full-screen
// browser, which must not write to the terminal and discards its logs.
func (s settings) openLogger(stderr io.Writer, fullScreen bool) (lfm.Logger, func()) {
	if s.logFile != "" {
		logger, closer, err := logging.OpenFileLogger(s.logFile, s.verbose)
		if err == nil {
			return logger, func() { closer.Close() }
		}
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	if fullScreen {
		return logging.NewNullLogger(), func() {}
	}
	return logging.NewWriterLogger(stderr, s.verbose), func() {}
}

// openCache builds the size cache, preloaded from the cache file unless it
// is disabled. A corrupt file is logged and replaced by an empty cache.
func (s settings) openCache(gw filesystem.Gateway, logger lfm.Logger) *sizecache.Cache {
	store := sizecache.NewStore()
	if s.cacheFile != "" {
		loaded, err := sizecache.Load(s.cacheFile)
		if err != nil {
			logger.Error("%v (starting with an empty size cache)", err)
		}
		store = loaded
		logger.Verbose("loaded %d cached size(s) from %s", store.Len(), s.cacheFile)
	}
	return sizecache.New(gw, store, sizecache.Options{
		ExcludedRoots: s.excludedRoots,
		Logger:        logger,
	})
}

// saveCache writes the cache back if anything changed. Failures are
// logged and never fail the command.
func (s settings) saveCache(cache *sizecache.Cache, logger lfm.Logger) {
	if s.cacheFile == "" || !cache.Dirty() {
		return
	}
	if err := cache.Flush(s.cacheFile); err != nil {
		logger.Error("%v", err)
		return
	}
	logger.Verbose("saved size cache to %s", s.cacheFile)
}

// resolveArg makes a command-line path absolute with a canonical parent
// directory. The last element stays lexical so a symlink argument is
// reported as a link rather than as its target.
func resolveArg(gw filesystem.Gateway, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", p, err)
	}
	if filesystem.IsRoot(abs) {
		return abs, nil
	}
	dir, err := gw.Canonicalize(filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

func displayOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
