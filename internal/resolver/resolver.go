package resolver

import (
	"fmt"

	"github.com/vvka-141/mdsource/internal/adapters"
	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/internal/files/ignore"
	"github.com/vvka-141/mdsource/internal/logging"
	"github.com/vvka-141/mdsource/internal/metadata"
	"github.com/vvka-141/mdsource/internal/registry"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// Option configures a Resolver or a single resolve call.
type Option func(*options)

type options struct {
	inclusive  mdsource.InclusiveFilter
	logger     mdsource.Logger
	ignoreOpts []ignore.Option
}

// WithInclusiveFilter keeps only components the filter has. A component that
// is not wanted is replaced by those of its children that are.
func WithInclusiveFilter(f mdsource.InclusiveFilter) Option {
	return func(o *options) {
		o.inclusive = f
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l mdsource.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIgnoreOptions passes options to the ignore filter built for each call,
// for example a different project marker or ignore file name.
func WithIgnoreOptions(opts ...ignore.Option) Option {
	return func(o *options) {
		o.ignoreOpts = append(o.ignoreOpts, opts...)
	}
}

// Resolver maps the files under a path to components.
//
// A Resolver is not safe for concurrent use. Separate resolvers may share a
// registry.
type Resolver struct {
	reg      *registry.Registry
	tree     filesystem.Tree
	defaults options

	// State of the current call.
	opts    options
	filter  *ignore.Filter
	factory *adapters.Factory
	ignored []string
	denied  map[string]struct{}
}

// New creates a resolver reading through tree. A nil tree reads the local
// disk.
func New(reg *registry.Registry, tree filesystem.Tree, opts ...Option) *Resolver {
	if tree == nil {
		tree = filesystem.NewOSFileSystem()
	}
	o := options{logger: logging.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver{reg: reg, tree: tree, defaults: o}
}

// ResolveFromPath resolves every component at or beneath root. Options given
// here apply to this call only, on top of those given to New.
//
// When root is a directory that forms one whole component it is resolved as
// that component; otherwise its contents are walked.
func (r *Resolver) ResolveFromPath(root string, opts ...Option) ([]*component.Component, error) {
	if !r.tree.Exists(root) {
		return nil, fmt.Errorf("%w: %s", mdsource.ErrNotFound, root)
	}
	r.begin(root, opts)

	var (
		out []*component.Component
		err error
	)
	if r.tree.IsDirectory(root) && r.componentDirectoryType(root) == nil {
		out, err = r.walk(root)
	} else {
		out, err = r.resolveEntry(root)
	}
	if err != nil {
		return nil, err
	}

	out = dedupe(out)
	r.opts.logger.Verbose("resolved %d components under %s (%d ignored paths)", len(out), root, len(r.ignored))
	return out, nil
}

// IgnoredPaths lists the paths the last call skipped because the ignore
// filter denied them, in the order they were met.
func (r *Resolver) IgnoredPaths() []string {
	return append([]string(nil), r.ignored...)
}

// Filter returns the ignore filter used by the last call.
func (r *Resolver) Filter() *ignore.Filter {
	return r.filter
}

func (r *Resolver) begin(root string, opts []Option) {
	r.opts = r.defaults
	r.opts.ignoreOpts = append([]ignore.Option(nil), r.defaults.ignoreOpts...)
	for _, opt := range opts {
		opt(&r.opts)
	}
	r.filter = ignore.FindAndCreate(r.tree, root, r.opts.ignoreOpts...)
	if r.filter.Active() {
		r.opts.logger.Verbose("using ignore file %s", r.filter.Source())
	}
	r.factory = adapters.NewFactory(r.reg, r.tree, r.filter, adapters.NewSession())
	r.ignored = nil
	r.denied = make(map[string]struct{})
}

// resolveEntry resolves root when it is a single file or a directory forming
// one component.
func (r *Resolver) resolveEntry(root string) ([]*component.Component, error) {
	c, err := r.resolveComponent(root, true)
	if err != nil || c == nil {
		return nil, err
	}
	return r.selectWanted(c)
}

// resolveComponent infers path's type and runs its adapter. It returns nil
// for denied paths, package manifests, and content files left for their
// descriptor to resolve.
func (r *Resolver) resolveComponent(path string, isResolvingSource bool) (*component.Component, error) {
	if r.deny(path) {
		return nil, nil
	}

	t, err := r.inferType(path)
	if err != nil || t == nil {
		return nil, err
	}
	a, err := r.factory.Adapter(t)
	if err != nil {
		return nil, err
	}

	if isResolvingSource || metadata.IsDescriptor(path) || !a.AllowsDescriptorAsSoleFile() {
		return a.Resolve(path, isResolvingSource)
	}
	return nil, nil
}

// deny reports whether the filter denies path, recording it once when so.
func (r *Resolver) deny(path string) bool {
	if !r.filter.Denies(path) {
		return false
	}
	if _, seen := r.denied[path]; !seen {
		r.denied[path] = struct{}{}
		r.ignored = append(r.ignored, path)
		r.opts.logger.Verbose("ignoring %s", path)
	}
	return true
}

// selectWanted applies the inclusive filter to c. When c is not wanted its
// children are offered instead.
func (r *Resolver) selectWanted(c *component.Component) ([]*component.Component, error) {
	if r.opts.inclusive == nil || r.opts.inclusive.Has(c.Member()) {
		return []*component.Component{c}, nil
	}
	children, err := c.Children()
	if err != nil {
		return nil, err
	}
	var out []*component.Component
	for _, child := range children {
		if r.opts.inclusive.Has(child.Member()) {
			out = append(out, child)
		}
	}
	return out, nil
}

// dedupe drops components equal to one already kept.
func dedupe(in []*component.Component) []*component.Component {
	seen := make(map[string][]*component.Component, len(in))
	out := in[:0]
	for _, c := range in {
		if containsEqual(seen[c.Key()], c) {
			continue
		}
		seen[c.Key()] = append(seen[c.Key()], c)
		out = append(out, c)
	}
	return out
}

func containsEqual(kept []*component.Component, c *component.Component) bool {
	for _, k := range kept {
		if k.Equal(c) {
			return true
		}
	}
	return false
}
