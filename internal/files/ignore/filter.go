package ignore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// DefaultDenyPatterns are applied in addition to the user's patterns whenever
// an ignore file is in effect. User negations cannot re-accept them.
var DefaultDenyPatterns = []string{
	"**/*.dup",
	"**/.*",
	"**/package2-descriptor.json",
	"**/package2-manifest.json",
	"!**/.settings",
	"!**/.settings/**",
}

// Filter decides which paths take part in resolution. A nil *Filter and an
// inert filter both accept everything.
type Filter struct {
	root     string
	source   string
	tree     filesystem.Tree
	user     gitignore.Matcher
	builtins gitignore.Matcher
	patterns []string
}

type options struct {
	projectMarker string
	ignoreFile    string
}

// Option configures FindAndCreate.
type Option func(*options)

// WithProjectMarker overrides the file that marks the project root.
func WithProjectMarker(name string) Option {
	return func(o *options) {
		if name != "" {
			o.projectMarker = name
		}
	}
}

// WithIgnoreFile overrides the ignore file name looked up beside the marker.
func WithIgnoreFile(name string) Option {
	return func(o *options) {
		if name != "" {
			o.ignoreFile = name
		}
	}
}

// FindAndCreate walks upward from seed until it finds the project marker,
// then loads the ignore file beside it through tree. When either file is
// missing, or the ignore file cannot be read, the filter denies nothing.
func FindAndCreate(tree filesystem.Tree, seed string, opts ...Option) *Filter {
	o := options{
		projectMarker: mdsource.DefaultProjectMarker,
		ignoreFile:    mdsource.DefaultIgnoreFile,
	}
	for _, opt := range opts {
		opt(&o)
	}

	root, ok := findProjectRoot(tree, seed, o.projectMarker)
	if !ok {
		return &Filter{tree: tree}
	}
	source := filepath.Join(root, o.ignoreFile)
	if !tree.Exists(source) {
		return &Filter{tree: tree, root: root}
	}
	data, err := readIgnoreFile(tree, source)
	if err != nil {
		return &Filter{tree: tree, root: root}
	}
	f := New(tree, root, data)
	f.source = source
	return f
}

// readIgnoreFile falls back to ReadFile for trees, such as archives, that
// cannot read without a context.
func readIgnoreFile(tree filesystem.Tree, source string) ([]byte, error) {
	data, err := tree.ReadFileSync(source)
	if errors.Is(err, mdsource.ErrNotImplemented) {
		return tree.ReadFile(context.Background(), source)
	}
	return data, err
}

// findProjectRoot walks up from seed. On the local disk a relative seed is
// made absolute first so the walk can pass the working directory.
func findProjectRoot(tree filesystem.Tree, seed, marker string) (string, bool) {
	dir := filepath.Clean(seed)
	if !tree.IsDirectory(dir) {
		dir = filepath.Dir(dir)
	}
	if abs, ok := filesystem.Abs(tree, dir); ok {
		dir = abs
	}
	for {
		if tree.Exists(filepath.Join(dir, marker)) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// New builds an active filter rooted at root from the content of an ignore
// file. Blank lines and comments are skipped.
func New(tree filesystem.Tree, root string, content []byte) *Filter {
	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	root = filepath.Clean(root)
	if abs, ok := filesystem.Abs(tree, root); ok {
		root = abs
	}
	return &Filter{
		root:     root,
		tree:     tree,
		user:     gitignore.NewMatcher(parsePatterns(patterns)),
		builtins: gitignore.NewMatcher(parsePatterns(DefaultDenyPatterns)),
		patterns: patterns,
	}
}

func parsePatterns(lines []string) []gitignore.Pattern {
	ps := make([]gitignore.Pattern, 0, len(lines))
	for _, l := range lines {
		ps = append(ps, gitignore.ParsePattern(l, nil))
	}
	return ps
}

// Active reports whether the filter can deny anything.
func (f *Filter) Active() bool {
	return f != nil && f.user != nil
}

// Root returns the project root the patterns are relative to, or "" when no
// project marker was found.
func (f *Filter) Root() string {
	if f == nil {
		return ""
	}
	return f.root
}

// Source returns the ignore file the patterns came from, or "".
func (f *Filter) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Patterns returns the user patterns in file order.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.patterns...)
}

// Denies reports whether path is excluded. Paths outside the project root
// are never denied, and a failure while matching counts as not denied.
func (f *Filter) Denies(path string) (denied bool) {
	if !f.Active() {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			denied = false
		}
	}()

	target := filepath.Clean(path)
	if filepath.IsAbs(f.root) && !filepath.IsAbs(target) {
		abs, ok := filesystem.Abs(f.tree, target)
		if !ok {
			return false
		}
		target = abs
	}
	rel, err := filepath.Rel(f.root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	isDir := f.tree != nil && f.tree.IsDirectory(path)

	return f.builtins.Match(parts, isDir) || f.user.Match(parts, isDir)
}

// Accepts is the negation of Denies.
func (f *Filter) Accepts(path string) bool {
	return !f.Denies(path)
}
