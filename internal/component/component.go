package component

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/internal/files/ignore"
	"github.com/vvka-141/mdsource/internal/metadata"
	"github.com/vvka-141/mdsource/internal/registry"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// Options holds the fields of a component under construction.
type Options struct {
	Name       string
	Type       *registry.MetadataType
	Descriptor string
	Content    string
	Parent     *Component
}

// Component is one resolved unit of metadata. It is immutable once built.
//
// A child refers to its parent; a parent never stores its children, they are
// recomputed from the tree by Children.
type Component struct {
	name       string
	typ        *registry.MetadataType
	descriptor string
	content    string
	parent     *Component

	tree   filesystem.Tree
	filter *ignore.Filter
}

// New builds a component reading through tree. filter may be nil.
func New(opts Options, tree filesystem.Tree, filter *ignore.Filter) *Component {
	return &Component{
		name:       opts.Name,
		typ:        opts.Type,
		descriptor: opts.Descriptor,
		content:    opts.Content,
		parent:     opts.Parent,
		tree:       tree,
		filter:     filter,
	}
}

func (c *Component) Name() string                 { return c.name }
func (c *Component) Type() *registry.MetadataType { return c.typ }
func (c *Component) Descriptor() string           { return c.descriptor }
func (c *Component) Content() string              { return c.content }
func (c *Component) Parent() *Component           { return c.parent }

// FullName joins the names of the ancestor chain with dots.
func (c *Component) FullName() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.FullName() + "." + c.name
}

// Member returns the {fullName, type} pair used by manifest writers.
func (c *Component) Member() mdsource.Member {
	return mdsource.Member{FullName: c.FullName(), Type: c.typ.Name}
}

// ID returns a deterministic identity for the component.
func (c *Component) ID() uuid.UUID {
	return metadata.ComponentID(c.typ.Name, c.FullName())
}

// Key identifies the component together with its files, so that two
// resolutions of the same files compare equal.
func (c *Component) Key() string {
	return c.Member().Key() + "|" + c.descriptor + "|" + c.content
}

func (c *Component) String() string {
	return fmt.Sprintf("%s:%s", c.typ.Name, c.FullName())
}

// Children recomputes the child components from the tree. Only parentless
// components whose type declares children have any.
//
// The directory holding the descriptor is walked recursively (the content
// directory when there is no descriptor), skipping denied paths. Descriptors
// whose suffix names a child type become children, as do files named after a
// child type's fixed descriptor name.
func (c *Component) Children() ([]*Component, error) {
	if c.parent != nil || !c.typ.HasChildren() {
		return nil, nil
	}

	var root string
	switch {
	case c.descriptor != "":
		root = filepath.Dir(c.descriptor)
	case c.content != "" && c.tree.IsDirectory(c.content):
		root = c.content
	default:
		return nil, nil
	}

	var children []*Component
	err := c.walk(root, func(path string) {
		if path == c.descriptor {
			return
		}
		if child := c.childFor(path); child != nil {
			children = append(children, child)
		}
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

func (c *Component) childFor(path string) *Component {
	if d, ok := metadata.ParseDescriptor(path); ok {
		childType, ok := c.typ.ChildBySuffix(d.Suffix)
		if !ok {
			return nil
		}
		return New(Options{
			Name:       d.FullName,
			Type:       childType,
			Descriptor: path,
			Parent:     c,
		}, c.tree, c.filter)
	}

	childType, ok := c.typ.ChildByMetaFile(filepath.Base(path))
	if !ok {
		return nil
	}
	// Nested bundles are named "<section>/<entry>" after their two
	// enclosing directories.
	dir := filepath.Dir(path)
	return New(Options{
		Name:       filepath.Base(filepath.Dir(dir)) + "/" + filepath.Base(dir),
		Type:       childType,
		Descriptor: path,
		Content:    dir,
		Parent:     c,
	}, c.tree, c.filter)
}

// WalkContent lists the component's content files: the content file itself,
// or every file under the content directory except the descriptor and
// denied paths.
func (c *Component) WalkContent() ([]string, error) {
	if c.content == "" {
		return nil, nil
	}
	if !c.tree.IsDirectory(c.content) {
		if c.filter.Denies(c.content) {
			return nil, nil
		}
		return []string{c.content}, nil
	}

	var files []string
	err := c.walk(c.content, func(path string) {
		if path != c.descriptor {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// walk visits every accepted file under dir in sorted order.
func (c *Component) walk(dir string, visit func(path string)) error {
	entries, err := c.tree.ReadDirectory(dir)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	for _, name := range entries {
		path := filepath.Join(dir, name)
		if c.filter.Denies(path) {
			continue
		}
		if c.tree.IsDirectory(path) {
			if err := c.walk(path, visit); err != nil {
				return err
			}
			continue
		}
		visit(path)
	}
	return nil
}

// Equal reports whether two components have the same identity and files.
func (c *Component) Equal(other *Component) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Key() == other.Key() && parentKey(c) == parentKey(other)
}

func parentKey(c *Component) string {
	if c.parent == nil {
		return ""
	}
	return c.parent.Key()
}

// Files returns the descriptor and content paths that are set.
func (c *Component) Files() []string {
	var out []string
	for _, p := range []string{c.descriptor, c.content} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsPlaceholder reports whether the component was synthesized for children
// found without their parent's descriptor.
func (c *Component) IsPlaceholder() bool {
	return c.descriptor == "" && c.typ.HasChildren()
}
