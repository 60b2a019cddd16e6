package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/files/filesystem"
)

var sizeBytes bool

var sizeCmd = &cobra.Command{
	Use:   "size <path>...",
	Short: "Print the recursive size of files and directories",
	Long: `Prints the size of each path. Directories are summed recursively over
the regular files below them; symbolic links and special files count as
zero, as does any path that cannot be read. Results are cached and reused while a directory's modification time
is unchanged.

Examples:
  lfm size ~/Downloads
  lfm size --bytes . /tmp`,
	Args: RequirePaths,
	RunE: runSize,
}

func init() {
	rootCmd.AddCommand(sizeCmd)
	sizeCmd.Flags().BoolVar(&sizeBytes, "bytes", false, "Print sizes as plain byte counts")
}

func runSize(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	gw := filesystem.NewOSGateway()
	logger, closeLog := s.openLogger(cmd.ErrOrStderr(), false)
	defer closeLog()
	cache := s.openCache(gw, logger)
	defer s.saveCache(cache, logger)

	for _, arg := range args {
		path, err := resolveArg(gw, arg)
		if err != nil {
			return err
		}

		r := cache.Measure(path)
		if !r.Known {
			logger.Verbose("size of %s counted as zero: %v", arg, r.Err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", sizeColumn(r, sizeBytes), arg)
	}
	return nil
}
