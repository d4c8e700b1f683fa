package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/mdsource/internal/checksum"
	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// FileDigest describes one file of a component.
type FileDigest struct {
	Path        string `json:"path"`
	SizeBytes   int    `json:"sizeBytes"`
	Checksum    string `json:"checksum"`
	ChecksumRaw string `json:"checksumRaw"`
}

// ComponentDigest describes the files of one resolved component. Checksum
// covers the normalized checksums and relative paths of all files, so two
// trees holding the same component under different roots agree on it.
type ComponentDigest struct {
	Member   mdsource.Member `json:"member"`
	ID       uuid.UUID       `json:"id"`
	Files    []FileDigest    `json:"files"`
	Checksum string          `json:"checksum"`
}

// Scanner reads the files of resolved components and checksums them.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and tree are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	tree       filesystem.Tree
}

// NewScannerWithTree creates a scanner reading through tree. It must be the
// tree the components were resolved from.
// Panics if calculator or tree is nil.
func NewScannerWithTree(calculator checksum.Calculator, tree filesystem.Tree) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if tree == nil {
		panic("tree cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		tree:       tree,
	}
}

// ScanComponents digests each component in order.
func (s *Scanner) ScanComponents(ctx context.Context, comps []*component.Component) ([]ComponentDigest, error) {
	out := make([]ComponentDigest, 0, len(comps))
	for _, c := range comps {
		d, err := s.ScanComponent(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ScanComponent digests the descriptor and content files of c.
func (s *Scanner) ScanComponent(ctx context.Context, c *component.Component) (ComponentDigest, error) {
	paths, err := componentFiles(c)
	if err != nil {
		return ComponentDigest{}, fmt.Errorf("failed to list files of %s: %w", c, err)
	}

	root := componentRoot(c)
	files := make([]FileDigest, 0, len(paths))
	var combined strings.Builder
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return ComponentDigest{}, err
		}
		fd, err := s.processFile(ctx, p)
		if err != nil {
			return ComponentDigest{}, fmt.Errorf("failed to process file %s: %w", p, err)
		}
		files = append(files, fd)

		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		combined.WriteString(filepath.ToSlash(rel))
		combined.WriteByte(0)
		combined.WriteString(fd.Checksum)
		combined.WriteByte('\n')
	}

	return ComponentDigest{
		Member:   c.Member(),
		ID:       c.ID(),
		Files:    files,
		Checksum: s.calculator.CalculateRaw([]byte(combined.String())),
	}, nil
}

// processFile reads a file and generates its digest.
func (s *Scanner) processFile(ctx context.Context, path string) (FileDigest, error) {
	content, err := s.tree.ReadFile(ctx, path)
	if err != nil {
		return FileDigest{}, fmt.Errorf("failed to read file: %w", err)
	}
	return FileDigest{
		Path:        path,
		SizeBytes:   len(content),
		Checksum:    s.calculator.CalculateNormalized(content),
		ChecksumRaw: s.calculator.CalculateRaw(content),
	}, nil
}

// componentFiles lists the descriptor followed by the content files.
func componentFiles(c *component.Component) ([]string, error) {
	var paths []string
	if c.Descriptor() != "" {
		paths = append(paths, c.Descriptor())
	}
	content, err := c.WalkContent()
	if err != nil {
		return nil, err
	}
	for _, p := range content {
		if p != c.Descriptor() {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// componentRoot is the directory file paths are reported relative to in the
// combined checksum.
func componentRoot(c *component.Component) string {
	switch {
	case c.Content() != "":
		return filepath.Dir(c.Content())
	case c.Descriptor() != "":
		return filepath.Dir(c.Descriptor())
	}
	return "."
}
