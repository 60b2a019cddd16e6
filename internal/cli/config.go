package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/lfm/internal/config"
	"github.com/vvka-141/lfm/internal/tui"
	"github.com/vvka-141/lfm/pkg/lfm"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the lfm configuration file",
	Long: `lfm reads optional settings from a YAML file, by default
<user config dir>/lfm/config.yaml. Command-line flags override it.

Keys:
  cache_file      path of the size cache file
  show_hidden     list entries whose name starts with '.' (default: true)
  excluded_roots  absolute paths whose size is reported as zero
                  (default: /proc, /sys, /dev, /run)
  confirm_delete  ask before deleting in the browser (default: true)
  log_file        append log output to this file`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPathFor(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd)
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
}

func configPathFor(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	roots := s.excludedRoots
	if roots == nil {
		roots = lfm.DefaultExcludedRoots
	}
	effective := config.Config{
		CacheFile:     s.cacheFile,
		ShowHidden:    &s.showHidden,
		ExcludedRoots: roots,
		ConfirmDelete: &s.confirmDelete,
		LogFile:       s.logFile,
	}

	data, err := yaml.Marshal(&effective)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", displayOrNone(s.configPath))
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPathFor(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		if !tui.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Overwrite existing %s?", path), false) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	cacheFile, err := config.DefaultCacheFile()
	if err != nil {
		return err
	}
	showHidden, confirmDelete := true, true
	cfg := &config.Config{
		CacheFile:     cacheFile,
		ShowHidden:    &showHidden,
		ExcludedRoots: lfm.DefaultExcludedRoots,
		ConfirmDelete: &confirmDelete,
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration saved to %s\n", path)
	return nil
}
