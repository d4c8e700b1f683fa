package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mdsource/internal/config"
	"github.com/vvka-141/mdsource/internal/registry"
	"github.com/vvka-141/mdsource/internal/tui"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the metadata types of the registry",
	Long: `List every metadata type known to the registry with its directory, suffix
and adapter. Child types are listed after their parent.

Examples:
  # List the built-in types
  mdsource types

  # Inspect a custom registry as JSON
  mdsource types --registry ./registry.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

var (
	typesJSON     bool
	typesRegistry string
)

func init() {
	rootCmd.AddCommand(typesCmd)

	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output types as JSON")
	typesCmd.Flags().StringVar(&typesRegistry, "registry", "", "Path to a registry YAML replacing the built-in registry")
	_ = typesCmd.RegisterFlagCompletionFunc("registry", completeRegistryFiles)
}

type typeInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DirectoryName string `json:"directoryName,omitempty"`
	Suffix        string `json:"suffix,omitempty"`
	Adapter       string `json:"adapter"`
	Parent        string `json:"parent,omitempty"`
	Strict        bool   `json:"strictDirectoryName,omitempty"`
	InFolder      bool   `json:"inFolder,omitempty"`
}

func runTypes(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if typesRegistry != "" {
		cfg.Registry = typesRegistry
	}

	reg, err := loadRegistry(cfg.RegistryPath())
	if err != nil {
		return err
	}
	infos := listTypes(reg)

	if typesJSON {
		return writeJSON(cmd.OutOrStdout(), infos)
	}
	return printTypes(cmd.OutOrStdout(), tui.NewPrinter(tui.DetectMode()), infos)
}

// listTypes returns the top-level types ordered by id, each followed by its
// children. Aliases are skipped.
func listTypes(reg *registry.Registry) []typeInfo {
	var out []typeInfo
	for _, t := range reg.Types() {
		if t.AliasFor != "" || reg.ParentType(t.ID) != nil {
			continue
		}
		out = append(out, newTypeInfo(t, ""))
		if !t.HasChildren() {
			continue
		}
		for _, child := range reg.Types() {
			if p := reg.ParentType(child.ID); p != nil && p.ID == t.ID {
				out = append(out, newTypeInfo(child, t.Name))
			}
		}
	}
	return out
}

func newTypeInfo(t *registry.MetadataType, parent string) typeInfo {
	return typeInfo{
		ID:            t.ID,
		Name:          t.Name,
		DirectoryName: t.DirectoryName,
		Suffix:        t.Suffix,
		Adapter:       string(t.Adapter()),
		Parent:        parent,
		Strict:        t.StrictDirectoryName,
		InFolder:      t.InFolder,
	}
}

func printTypes(w io.Writer, p tui.Printer, infos []typeInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.Render(tui.TitleStyle, "NAME")+"\tDIRECTORY\tSUFFIX\tADAPTER")
	for _, ti := range infos {
		name := ti.Name
		if ti.Parent != "" {
			name = "  " + name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, ti.DirectoryName, ti.Suffix, ti.Adapter)
	}
	return tw.Flush()
}
