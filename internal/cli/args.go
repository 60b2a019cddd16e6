package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequirePath validates that exactly one path argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequirePath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <path>

Usage: %s

Example:
  %s ./build`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequirePaths validates that at least one path argument is provided.
func RequirePaths(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <path>...

Usage: %s

Example:
  %s ~/Downloads ~/src`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
