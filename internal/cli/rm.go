package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/internal/sizecache"
	"github.com/vvka-141/lfm/internal/tui"
	"github.com/vvka-141/lfm/pkg/lfm"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove a file or directory tree",
	Long: `Removes a file, symbolic link or directory tree. A symbolic link is
removed itself; its target is left alone. Asks for confirmation unless
--force is given. Cached sizes of removed directories are dropped.

Examples:
  lfm rm ./build
  lfm rm --force /tmp/scratch`,
	Args: RequirePath,
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Do not ask for confirmation")
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	gw := filesystem.NewOSGateway()
	path, err := resolveArg(gw, args[0])
	if err != nil {
		return err
	}
	if filesystem.IsRoot(path) {
		return fmt.Errorf("refusing to remove %s", path)
	}
	if _, err := gw.Lstat(path); err != nil {
		return fmt.Errorf("cannot remove %s: %w", args[0], err)
	}

	if !rmForce {
		msg := fmt.Sprintf("Remove %s and everything in it?", path)
		if !tui.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), msg, false) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := gw.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s\n", path)

	logger, closeLog := s.openLogger(cmd.ErrOrStderr(), false)
	defer closeLog()
	dropCached(s.cacheFile, gw, logger)
	return nil
}

// dropCached prunes cache entries for paths that no longer exist.
func dropCached(cacheFile string, gw filesystem.Gateway, logger lfm.Logger) {
	if cacheFile == "" {
		return
	}
	store, err := sizecache.Load(cacheFile)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	if n := store.Prune(gw.Exists); n > 0 {
		if err := sizecache.Save(cacheFile, store); err != nil {
			logger.Error("%v", err)
			return
		}
		logger.Verbose("dropped %d cached size(s)", n)
	}
}
