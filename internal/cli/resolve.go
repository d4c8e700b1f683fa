package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mdsource/internal/checksum"
	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/config"
	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/internal/files/ignore"
	"github.com/vvka-141/mdsource/internal/files/scanner"
	"github.com/vvka-141/mdsource/internal/logging"
	"github.com/vvka-141/mdsource/internal/registry"
	"github.com/vvka-141/mdsource/internal/resolver"
	"github.com/vvka-141/mdsource/internal/tui"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [source_path]",
	Short: "List the components found under a source path",
	Long: `Resolve a file or directory into metadata components.

Without a path, every package directory listed in mdsource.yaml is resolved,
or the working directory when none are listed. Paths denied by the project's
ignore file (.forceignore beside sfdx-project.json) are skipped.

Examples:
  # Resolve a package directory
  mdsource resolve force-app

  # Resolve a single component with file checksums, as JSON
  mdsource resolve force-app/main/default/classes/A.cls --checksums --json

  # Keep only some members
  mdsource resolve force-app --filter ApexClass:A --filter 'CustomObject:*'

  # Resolve inside a zip archive
  mdsource resolve --zip source.zip unpackaged`,
	Args: OptionalSourcePath,
	RunE: runResolve,
}

type resolveFlagValues struct {
	json      bool
	checksums bool
	filters   []string
	registry  string
	zip       string
}

var resolveFlags resolveFlagValues

func resetResolveFlags() {
	resolveFlags = resolveFlagValues{}
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&resolveFlags.json, "json", false, "Output components as JSON")
	resolveCmd.Flags().BoolVar(&resolveFlags.checksums, "checksums", false, "Compute file and component checksums")
	resolveCmd.Flags().StringArrayVar(&resolveFlags.filters, "filter", nil, "Only keep members matching Type:FullName (repeatable, FullName may be *)")
	resolveCmd.Flags().StringVar(&resolveFlags.registry, "registry", "", "Path to a registry YAML replacing the built-in registry")
	resolveCmd.Flags().StringVar(&resolveFlags.zip, "zip", "", "Resolve paths inside this zip archive instead of the local disk")

	resolveCmd.ValidArgsFunction = completeSourcePath
	_ = resolveCmd.RegisterFlagCompletionFunc("filter", completeFilterTypes)
	_ = resolveCmd.RegisterFlagCompletionFunc("registry", completeRegistryFiles)
	_ = resolveCmd.RegisterFlagCompletionFunc("zip", completeZipFiles)
}

// resolvedComponent is the JSON shape of one component.
type resolvedComponent struct {
	Type       string               `json:"type"`
	FullName   string               `json:"fullName"`
	ID         string               `json:"id"`
	Descriptor string               `json:"descriptor,omitempty"`
	Content    string               `json:"content,omitempty"`
	Parent     string               `json:"parent,omitempty"`
	Checksum   string               `json:"checksum,omitempty"`
	Files      []scanner.FileDigest `json:"files,omitempty"`
}

type resolveOutput struct {
	Components []resolvedComponent `json:"components"`
	Members    map[string][]string `json:"members"`
	Ignored    []string            `json:"ignored"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	tree, closeTree, err := openTree(resolveFlags.zip)
	if err != nil {
		return err
	}
	defer closeTree()

	cfg, err := loadProjectConfig(args, resolveFlags.zip != "")
	if err != nil {
		return err
	}
	if resolveFlags.registry != "" {
		cfg.Registry = resolveFlags.registry
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg, err := loadRegistry(cfg.RegistryPath())
	if err != nil {
		return err
	}

	opts := []resolver.Option{
		resolver.WithLogger(logger),
		resolver.WithIgnoreOptions(ignoreOptions(cfg)...),
	}
	if len(resolveFlags.filters) > 0 {
		wanted, err := filterSet(reg, resolveFlags.filters)
		if err != nil {
			return err
		}
		opts = append(opts, resolver.WithInclusiveFilter(wanted))
	}

	roots := cfg.Roots()
	if len(args) == 1 {
		roots = []string{args[0]}
	}

	r := resolver.New(reg, tree, opts...)
	var (
		comps   []*component.Component
		ignored []string
	)
	for _, root := range roots {
		found, err := r.ResolveFromPath(root)
		if err != nil {
			return err
		}
		comps = append(comps, found...)
		ignored = append(ignored, r.IgnoredPaths()...)
	}

	out := resolveOutput{
		Components: make([]resolvedComponent, 0, len(comps)),
		Members:    memberSet(comps).Types(),
		Ignored:    ignored,
	}
	var digests []scanner.ComponentDigest
	if resolveFlags.checksums {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		digests, err = scanner.NewScannerWithTree(checksum.New(), tree).ScanComponents(ctx, comps)
		if err != nil {
			return err
		}
	}
	for i, c := range comps {
		rc := toResolvedComponent(c)
		if digests != nil {
			rc.Checksum = digests[i].Checksum
			rc.Files = digests[i].Files
		}
		out.Components = append(out.Components, rc)
	}

	if resolveFlags.json {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	printResolveOutput(cmd.OutOrStdout(), tui.NewPrinter(tui.DetectMode()), out)
	return nil
}

// openTree returns the local disk behind a directory cache, or the zip
// archive at zipPath.
func openTree(zipPath string) (filesystem.Tree, func(), error) {
	if zipPath == "" {
		tree, err := filesystem.NewCachedFileSystem(filesystem.NewOSFileSystem(), mdsource.DefaultTreeCacheSize)
		if err != nil {
			return nil, nil, err
		}
		return tree, func() {}, nil
	}

	f, err := os.Open(zipPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", mdsource.ErrNotFound, zipPath)
		}
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	tree, err := filesystem.NewZipFileSystem(f, info.Size())
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return tree, func() { f.Close() }, nil
}

// loadProjectConfig reads mdsource.yaml from the directory of the source
// path, or from the working directory when resolving an archive or the
// configured package directories.
func loadProjectConfig(args []string, inArchive bool) (*config.ProjectConfig, error) {
	dir := "."
	if len(args) == 1 && !inArchive {
		dir = args[0]
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
	}
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.Load(path)
}

func ignoreOptions(cfg *config.ProjectConfig) []ignore.Option {
	var opts []ignore.Option
	if cfg.IgnoreFile != "" {
		opts = append(opts, ignore.WithIgnoreFile(cfg.IgnoreFile))
	}
	if cfg.ProjectMarker != "" {
		opts = append(opts, ignore.WithProjectMarker(cfg.ProjectMarker))
	}
	return opts
}

// filterSet parses --filter values and replaces type names with the
// registry's display names.
func filterSet(reg *registry.Registry, values []string) (*mdsource.ComponentSet, error) {
	parsed, err := ParseMembers(values)
	if err != nil {
		return nil, err
	}
	set := mdsource.NewComponentSet()
	for _, m := range parsed.Members() {
		t, err := reg.TypeByName(m.Type)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q for --filter: %w", m.Type, err)
		}
		set.Add(mdsource.Member{Type: t.Name, FullName: m.FullName})
	}
	return set, nil
}

func memberSet(comps []*component.Component) *mdsource.ComponentSet {
	set := mdsource.NewComponentSet()
	for _, c := range comps {
		set.Add(c.Member())
	}
	return set
}

func toResolvedComponent(c *component.Component) resolvedComponent {
	rc := resolvedComponent{
		Type:       c.Type().Name,
		FullName:   c.FullName(),
		ID:         c.ID().String(),
		Descriptor: filepath.ToSlash(c.Descriptor()),
		Content:    filepath.ToSlash(c.Content()),
	}
	if p := c.Parent(); p != nil {
		rc.Parent = p.String()
	}
	return rc
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// printResolveOutput lists members grouped by type, each followed by its
// files.
func printResolveOutput(w io.Writer, p tui.Printer, out resolveOutput) {
	byType := make(map[string][]resolvedComponent)
	for _, c := range out.Components {
		byType[c.Type] = append(byType[c.Type], c)
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		fmt.Fprintln(w, p.Render(tui.TypeStyle, t))
		comps := byType[t]
		sort.SliceStable(comps, func(i, j int) bool { return comps[i].FullName < comps[j].FullName })
		for _, c := range comps {
			line := fmt.Sprintf("  %s %s", p.Symbol(tui.SymbolBullet, "-"), p.Render(tui.NameStyle, c.FullName))
			if c.Checksum != "" {
				line += " " + p.Render(tui.ChecksumStyle, c.Checksum[:12])
			}
			fmt.Fprintln(w, line)
			for _, f := range []string{c.Descriptor, c.Content} {
				if f != "" {
					fmt.Fprintf(w, "      %s\n", p.Render(tui.PathStyle, f))
				}
			}
		}
	}

	summary := fmt.Sprintf("%d component(s)", len(out.Components))
	if len(out.Ignored) > 0 {
		summary += fmt.Sprintf(", %d ignored path(s)", len(out.Ignored))
	}
	fmt.Fprintf(w, "%s %s\n", p.Render(tui.SuccessStyle, p.Symbol(tui.SymbolCheck, "OK")), summary)
}
