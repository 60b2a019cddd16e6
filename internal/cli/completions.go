package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lfm/internal/sizecache"
)

func init() {
	rootCmd.ValidArgsFunction = completeDirectories
	lsCmd.ValidArgsFunction = completeDirectories
	sizeCmd.ValidArgsFunction = completeCachedDirectories
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeCachedDirectories offers directories already in the size cache,
// falling back to the shell's own file completion.
func completeCachedDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := resolveSettings(cmd)
	if err != nil || s.cacheFile == "" {
		return nil, cobra.ShellCompDirectiveDefault
	}
	store, err := sizecache.Load(s.cacheFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return matchCached(store, toComplete), cobra.ShellCompDirectiveDefault
}

func matchCached(store *sizecache.Store, prefix string) []string {
	var matches []string
	for _, e := range store.Entries() {
		if strings.HasPrefix(e.Path, prefix) {
			matches = append(matches, e.Path)
		}
	}
	return matches
}
