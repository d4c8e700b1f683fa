package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// OptionalSourcePath accepts zero or one <source_path> argument. Without
// one, the package directories of the project in the working directory are
// resolved.
func OptionalSourcePath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s force-app`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// ParseMembers parses "Type:FullName" filter values. FullName may be "*"
// to match every member of the type, and may itself contain colons.
func ParseMembers(values []string) (*mdsource.ComponentSet, error) {
	set := mdsource.NewComponentSet()
	for _, v := range values {
		typ, name, ok := strings.Cut(v, ":")
		typ, name = strings.TrimSpace(typ), strings.TrimSpace(name)
		if !ok || typ == "" || name == "" {
			return nil, fmt.Errorf("invalid argument %q for --filter: expected Type:FullName", v)
		}
		set.Add(mdsource.Member{Type: typ, FullName: name})
	}
	return set, nil
}
