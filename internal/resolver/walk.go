package resolver

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/metadata"
	"github.com/vvka-141/mdsource/internal/registry"
)

// visitedSet holds the descriptors and content of resolved components. A
// path is covered when it or one of its ancestors was visited.
type visitedSet map[string]struct{}

func (v visitedSet) mark(c *component.Component) {
	for _, p := range c.Files() {
		v[p] = struct{}{}
	}
}

func (v visitedSet) covers(path string) bool {
	for p := path; ; {
		if _, ok := v[p]; ok {
			return true
		}
		parent := filepath.Dir(p)
		if parent == p {
			return false
		}
		p = parent
	}
}

func (r *Resolver) walk(root string) ([]*component.Component, error) {
	return r.walkDirectory(root, make(visitedSet))
}

// walkDirectory resolves dir depth first. Subdirectories are handled before
// the files beside them, so that components living deeper are found before
// an early stop ends the scan of dir.
func (r *Resolver) walkDirectory(dir string, visited visitedSet) ([]*component.Component, error) {
	if r.deny(dir) {
		return nil, nil
	}
	entries, err := r.tree.ReadDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var dirs, files []string
	for _, name := range entries {
		path := filepath.Join(dir, name)
		if r.tree.IsDirectory(path) {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}

	var out []*component.Component
	for _, sub := range dirs {
		if visited.covers(sub) || r.deny(sub) {
			continue
		}
		if r.componentDirectoryType(sub) != nil {
			c, err := r.resolveComponent(sub, true)
			if err != nil {
				return nil, err
			}
			if c != nil {
				wanted, err := r.accept(c, visited)
				if err != nil {
					return nil, err
				}
				out = append(out, wanted...)
				continue
			}
		}
		found, err := r.walkDirectory(sub, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}

	for _, file := range files {
		if visited.covers(file) || r.deny(file) || !r.isMetadataFile(file) {
			continue
		}
		c, err := r.resolveComponent(file, false)
		if err != nil {
			return nil, err
		}
		if c == nil {
			continue
		}
		wanted, err := r.accept(c, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, wanted...)

		if outsideTypeDirectory(c, file) {
			break
		}
	}
	return out, nil
}

func (r *Resolver) accept(c *component.Component, visited visitedSet) ([]*component.Component, error) {
	visited.mark(c)
	r.opts.logger.Verbose("resolved %s", c)
	return r.selectWanted(c)
}

// isMetadataFile reports whether a file met during a walk can start a
// resolution: a descriptor, a folder descriptor, or content whose extension
// is a registered suffix and whose type directory is on the path.
func (r *Resolver) isMetadataFile(path string) bool {
	if metadata.IsDescriptor(path) {
		return true
	}
	if _, ok := metadata.ParseFolderDescriptor(path); ok {
		return true
	}
	t := r.reg.TypeBySuffix(metadata.ExtName(path))
	return t != nil && metadata.ContainsSegment(path, t.DirectoryName)
}

// outsideTypeDirectory reports whether c is a strict-directory or
// mixed-content component resolved from a file that is not directly in its
// type directory. Such a file lives inside the component's own folder and
// the rest of that folder belongs to the same component.
func outsideTypeDirectory(c *component.Component, file string) bool {
	t := c.Type()
	if c.Parent() != nil {
		return false
	}
	if !t.StrictDirectoryName && t.Adapter() != registry.AdapterMixedContent {
		return false
	}
	typeDir := filepath.Dir(file)
	if t.InFolder {
		typeDir = filepath.Dir(typeDir)
	}
	return filepath.Base(typeDir) != t.DirectoryName
}
