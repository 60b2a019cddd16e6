package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/dirindex"
	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/internal/navigation"
	"github.com/vvka-141/lfm/internal/tui"
)

// isInteractive is swapped in tests.
var isInteractive = tui.IsInteractive

func runBrowse(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	start := "."
	if len(args) > 0 {
		start = args[0]
	}

	gw := filesystem.NewOSGateway()
	index := dirindex.New(gw, dirindex.Options{HideDotfiles: !s.showHidden})
	state, err := navigation.New(index, gw, start)
	if err != nil {
		return err
	}

	if !isInteractive() {
		logger, closeLog := s.openLogger(cmd.ErrOrStderr(), false)
		defer closeLog()
		cache := s.openCache(gw, logger)
		defer s.saveCache(cache, logger)
		return printListing(cmd.OutOrStdout(), state, cache, false)
	}

	logger, closeLog := s.openLogger(cmd.ErrOrStderr(), true)
	defer closeLog()
	cache := s.openCache(gw, logger)
	defer s.saveCache(cache, logger)

	logger.Verbose("browsing %s", state.CurrentPath())
	b := tui.NewBrowser(state, cache, gw, tui.BrowserOptions{
		ConfirmDelete: s.confirmDelete,
		Logger:        logger,
	})
	final, err := tui.RunBrowser(b)
	if err != nil {
		return err
	}

	st := cache.Stats()
	logger.Verbose("exit in %s: %d cache hit(s), %d walk(s), %d error(s)",
		final.State().CurrentPath(), st.Hits, st.Walks, st.Errors)
	return nil
}
