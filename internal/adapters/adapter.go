package adapters

import (
	"path/filepath"
	"strings"

	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/internal/files/ignore"
	"github.com/vvka-141/mdsource/internal/metadata"
	"github.com/vvka-141/mdsource/internal/registry"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// Adapter resolves the files of one metadata type into components.
type Adapter interface {
	// Resolve builds the component that path belongs to. It returns nil
	// without error when path is a valid location but not an entry point,
	// such as an empty bundle directory.
	Resolve(path string, isResolvingSource bool) (*component.Component, error)

	// AllowsDescriptorAsSoleFile reports whether the type keeps descriptor
	// and content in separate files, so that a content file met during a
	// directory walk can be left for its descriptor to resolve.
	AllowsDescriptorAsSoleFile() bool
}

// variant is the per-layout half of an adapter.
type variant interface {
	// locateDescriptor finds the descriptor for a trigger that is not
	// itself a root descriptor. It returns "" when there is none.
	locateDescriptor(trigger string) (string, error)

	// populate completes the component. draft is nil when no descriptor
	// was found.
	populate(trigger string, draft *component.Options, isResolvingSource bool) (*component.Component, error)

	componentName(desc metadata.Descriptor) string
	allowsDescriptorAsSoleFile() bool
}

var variants = map[registry.AdapterKind]func(*base) variant{
	registry.AdapterDefault:           func(b *base) variant { return &defaultAdapter{base: b} },
	registry.AdapterMatchingContent:   func(b *base) variant { return &matchingContentAdapter{base: b} },
	registry.AdapterMixedContent:      func(b *base) variant { return newMixedContentAdapter(b, false) },
	registry.AdapterBundle:            func(b *base) variant { return newBundleAdapter(b) },
	registry.AdapterDecomposed:        func(b *base) variant { return newDecomposedAdapter(b) },
	registry.AdapterDigitalExperience: func(b *base) variant { return &digitalExperienceAdapter{base: b} },
}

// Factory creates adapters that share a tree, an ignore filter and a
// resolve session.
type Factory struct {
	reg     *registry.Registry
	tree    filesystem.Tree
	filter  *ignore.Filter
	session *Session
}

// NewFactory creates a factory. filter and session may be nil.
func NewFactory(reg *registry.Registry, tree filesystem.Tree, filter *ignore.Filter, session *Session) *Factory {
	return &Factory{reg: reg, tree: tree, filter: filter, session: session}
}

// Adapter returns the adapter for t's declared strategy.
func (f *Factory) Adapter(t *registry.MetadataType) (Adapter, error) {
	kind := t.Adapter()
	newVariant, ok := variants[kind]
	if !ok {
		return nil, &mdsource.MissingAdapterError{Type: t.Name, Adapter: string(kind)}
	}
	b := &base{typ: t, reg: f.reg, tree: f.tree, filter: f.filter, session: f.session}
	return &adapter{base: b, v: newVariant(b)}, nil
}

// base carries what every variant needs plus the default hooks.
type base struct {
	typ     *registry.MetadataType
	reg     *registry.Registry
	tree    filesystem.Tree
	filter  *ignore.Filter
	session *Session
}

func (b *base) newComponent(opts component.Options) *component.Component {
	return component.New(opts, b.tree, b.filter)
}

// componentName names in-folder types after every folder between the type
// directory and the descriptor: "reports/A/B/x.report-meta.xml" is "A/B/x".
func (b *base) componentName(desc metadata.Descriptor) string {
	if b.typ.FolderType == "" || b.typ.FolderType == b.typ.ID {
		return desc.FullName
	}
	parts := metadata.SplitPath(desc.Path)
	idx := metadata.LastIndex(parts, b.typ.DirectoryName)
	if idx < 0 {
		return desc.FullName
	}
	segments := make([]string, 0, len(parts)-idx)
	segments = append(segments, parts[idx+1:len(parts)-1]...)
	segments = append(segments, desc.FullName)
	return strings.Join(segments, "/")
}

func (b *base) allowsDescriptorAsSoleFile() bool { return false }

func (b *base) expectedContent(trigger string) error {
	return &mdsource.ExpectedContentError{Path: trigger, Type: b.typ.Name}
}

func (b *base) unexpectedIgnore(path, trigger string) error {
	return &mdsource.UnexpectedIgnoreError{Path: path, Trigger: trigger}
}

// adapter runs the two resolution phases over a variant.
type adapter struct {
	*base
	v variant
}

func (a *adapter) AllowsDescriptorAsSoleFile() bool {
	return a.v.allowsDescriptorAsSoleFile()
}

func (a *adapter) Resolve(path string, isResolvingSource bool) (*component.Component, error) {
	desc, ok := a.rootDescriptor(path)
	if !ok {
		located, err := a.v.locateDescriptor(path)
		if err != nil {
			return nil, err
		}
		if located != "" {
			desc, ok = a.parseLocated(located)
		}
	}

	var draft *component.Options
	if ok {
		if a.filter.Denies(desc.Path) {
			return nil, a.unexpectedIgnore(desc.Path, path)
		}
		draft = &component.Options{
			Name:       a.v.componentName(desc),
			Type:       a.typ,
			Descriptor: desc.Path,
		}
	}
	return a.v.populate(path, draft, isResolvingSource)
}

// rootDescriptor accepts path as the descriptor when it is one. Strict types
// only accept descriptors inside their type directory or inside a folder
// named after the component; child descriptors are never root descriptors.
func (a *adapter) rootDescriptor(path string) (metadata.Descriptor, bool) {
	if d, ok := metadata.ParseDescriptor(path); ok {
		if _, isChild := a.typ.ChildBySuffix(d.Suffix); isChild {
			return metadata.Descriptor{}, false
		}
		if !a.typ.StrictDirectoryName {
			return d, true
		}
		parent := filepath.Dir(path)
		typeDir := filepath.Base(parent)
		if a.typ.InFolder {
			typeDir = filepath.Base(filepath.Dir(parent))
		}
		if typeDir == a.typ.DirectoryName || filepath.Base(parent) == d.FullName {
			return d, true
		}
		return metadata.Descriptor{}, false
	}

	if d, ok := metadata.ParseFolderDescriptor(path); ok {
		d.Suffix = a.typ.Suffix
		return d, true
	}

	if !a.v.allowsDescriptorAsSoleFile() {
		return metadata.ParseContentDescriptor(path, a.typ.Suffix)
	}
	return metadata.Descriptor{}, false
}

func (a *adapter) parseLocated(path string) (metadata.Descriptor, bool) {
	if d, ok := metadata.ParseDescriptor(path); ok {
		return d, true
	}
	if d, ok := metadata.ParseFolderDescriptor(path); ok {
		d.Suffix = a.typ.Suffix
		return d, true
	}
	if a.typ.MetaFileSuffix != "" && filepath.Base(path) == a.typ.MetaFileSuffix {
		return metadata.Descriptor{Path: path}, true
	}
	return metadata.ParseContentDescriptor(path, a.typ.Suffix)
}

var _ Adapter = (*adapter)(nil)
