package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/pkg/lfm"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory",
	Long: `Creates a single directory. The parent must exist and the path must not.

Example:
  lfm mkdir ./build`,
	Args: RequirePath,
	RunE: runMkdir,
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
}

func runMkdir(cmd *cobra.Command, args []string) error {
	gw := filesystem.NewOSGateway()
	path, err := resolveArg(gw, args[0])
	if err != nil {
		return err
	}

	if err := gw.Mkdir(path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", lfm.ErrAlreadyExists, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
	return nil
}
