package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lfm [path]",
	Short: "Terminal file browser with cached directory sizes",
	Long: `lfm browses a directory tree in the terminal and shows the recursive
size of the highlighted entry.

Directory sizes are cached by path and reused while the directory's
modification time is unchanged. The cache is saved between runs.

Run without a subcommand to open the browser at [path] (default: the
current directory). When stdin or stdout is not a terminal the listing
is printed instead.

Keys:
  ↑/k ↓/j     move           enter/l   open directory
  ←/h         parent         r         refresh
  n           new directory  d         delete
  ?           full help      q         quit

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Start path does not exist or is not a directory
  11 - Invalid configuration file`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runBrowse,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("help", false, "Help for lfm")
	pf.BoolP("verbose", "v", false, "Enable verbose output for all commands")
	pf.String("config", "", "Config file (default: <user config dir>/lfm/config.yaml)")
	pf.String("cache-file", "", "Size cache file (default: <user cache dir>/lfm/sizecache.bin)")
	pf.Bool("no-cache", false, "Neither load nor save the size cache file")
	pf.Bool("hidden", true, "List entries whose name starts with '.'")
	pf.Bool("no-hidden", false, "Do not list entries whose name starts with '.'")
	pf.String("log-file", "", "Append log output to this file")

	rootCmd.MarkFlagsMutuallyExclusive("hidden", "no-hidden")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
