package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mdsource/internal/registry"
)

// completeSourcePath provides shell completion for the source path: any
// file or directory, once.
func completeSourcePath(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle path completion
	return nil, cobra.ShellCompDirectiveDefault
}

// completeRegistryFiles provides shell completion for registry YAML paths.
func completeRegistryFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeZipFiles provides shell completion for archive paths.
func completeZipFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"zip"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFilterTypes provides shell completion for --filter values. Type
// names of the built-in registry are offered with a trailing colon; once the
// colon is typed the wildcard is offered.
func completeFilterTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if typ, _, ok := strings.Cut(toComplete, ":"); ok {
		return []string{typ + ":*"}, cobra.ShellCompDirectiveNoFileComp
	}

	reg, err := registry.Default()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var matches []string
	for _, ti := range listTypes(reg) {
		if strings.HasPrefix(strings.ToLower(ti.Name), strings.ToLower(toComplete)) {
			matches = append(matches, ti.Name+":")
		}
	}

	return matches, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
