package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/dirindex"
	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/internal/navigation"
	"github.com/vvka-141/lfm/internal/sizecache"
	"github.com/vvka-141/lfm/internal/tui"
)

var lsBytes bool

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "Print a directory listing with sizes",
	Long: `Prints the entries of a directory in browser order: the parent entry,
then directories, then files, each group sorted by name. Every entry is
shown with its size; directory sizes come from the size cache.

Examples:
  lfm ls
  lfm ls --no-hidden ~/src
  lfm ls --bytes /var/log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVar(&lsBytes, "bytes", false, "Print sizes as plain byte counts")
}

func runLs(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	start := "."
	if len(args) > 0 {
		start = args[0]
	}

	gw := filesystem.NewOSGateway()
	state, err := navigation.New(dirindex.New(gw, dirindex.Options{HideDotfiles: !s.showHidden}), gw, start)
	if err != nil {
		return err
	}

	logger, closeLog := s.openLogger(cmd.ErrOrStderr(), false)
	defer closeLog()
	cache := s.openCache(gw, logger)
	defer s.saveCache(cache, logger)

	return printListing(cmd.OutOrStdout(), state, cache, lsBytes)
}

// printListing writes one line per entry: size, then label. The parent
// entry is not sized.
func printListing(w io.Writer, state navigation.State, sizer tui.Sizer, rawBytes bool) error {
	if msg := state.LastError(); msg != "" {
		return errors.New(msg)
	}

	fmt.Fprintf(w, "%s:\n", state.CurrentPath())
	for _, e := range state.Entries() {
		size := "-"
		if !e.IsParent {
			size = sizeColumn(sizer.Measure(e.Path), rawBytes)
		}
		fmt.Fprintf(w, "%12s  %s\n", size, tui.EntryLabel(e))
	}
	return nil
}

func sizeColumn(r sizecache.Result, rawBytes bool) string {
	if rawBytes {
		return fmt.Sprintf("%d", r.Bytes)
	}
	return tui.FormatBytes(r.Bytes)
}
