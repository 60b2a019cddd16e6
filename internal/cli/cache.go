package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/internal/sizecache"
	"github.com/vvka-141/lfm/internal/tui"
)

var (
	cacheStatsList  bool
	cachePruneStale bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the size cache file",
	Long: `The size cache file maps directory paths to their recursive size and the
directory's modification time when the size was computed.

Subcommands:
  stats  Show the cache file location and contents summary
  clear  Delete the cache file
  prune  Drop entries for directories that no longer exist`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache file statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cache file",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop entries for directories that no longer exist",
	Long: `Drops entries for directories that no longer exist. With --stale, also
drops entries whose directory has been modified since it was sized.`,
	Args: cobra.NoArgs,
	RunE: runCachePrune,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd, cachePruneCmd)

	cacheStatsCmd.Flags().BoolVar(&cacheStatsList, "list", false, "List every cached entry")
	cachePruneCmd.Flags().BoolVar(&cachePruneStale, "stale", false, "Also drop entries whose directory changed")
}

var errCacheDisabled = errors.New("size cache file is disabled (--no-cache)")

func cacheFileFor(cmd *cobra.Command) (string, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return "", err
	}
	if s.cacheFile == "" {
		return "", errCacheDisabled
	}
	return s.cacheFile, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	path, err := cacheFileFor(cmd)
	if err != nil {
		return err
	}

	store, err := sizecache.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:    %s\n", path)
	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "On disk: %s\n", tui.FormatBytes(uint64(info.Size())))
	} else {
		fmt.Fprintf(out, "On disk: (not created yet)\n")
	}
	fmt.Fprintf(out, "Entries: %d\n", store.Len())

	if cacheStatsList {
		for _, e := range store.Entries() {
			fmt.Fprintf(out, "%12s  %s  %s\n", tui.FormatBytes(e.Size), e.ModTime.Format(tui.TimeLayout), e.Path)
		}
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	path, err := cacheFileFor(cmd)
	if err != nil {
		return err
	}
	if err := sizecache.Remove(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %s\n", path)
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	path, err := cacheFileFor(cmd)
	if err != nil {
		return err
	}

	store, err := sizecache.Load(path)
	if err != nil {
		return err
	}

	gw := filesystem.NewOSGateway()
	total := store.Len()
	removed := store.Prune(func(p string) bool {
		mt, err := gw.ModTime(p)
		if err != nil {
			return false
		}
		if !cachePruneStale {
			return true
		}
		e, _ := store.Get(p)
		return e.Fresh(mt)
	})

	if removed > 0 {
		if err := sizecache.Save(path, store); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d of %d entries\n", removed, total)
	return nil
}
