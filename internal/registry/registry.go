package registry

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// Registry is an immutable table of metadata types with derived lookup
// indices. It is safe for concurrent use.
type Registry struct {
	types map[string]*MetadataType

	suffixes      map[string]string // top-level suffix -> type id
	childSuffixes map[string]string // child suffix -> parent type id
	strictDirs    map[string]string // directory name -> strict type id
	childParent   map[string]string // child type id -> parent type id
}

type fileFormat struct {
	Types map[string]typeFormat `yaml:"types"`
}

type typeFormat struct {
	Name                string                `yaml:"name"`
	DirectoryName       string                `yaml:"directoryName"`
	Suffix              string                `yaml:"suffix"`
	LegacySuffix        string                `yaml:"legacySuffix"`
	MetaFileSuffix      string                `yaml:"metaFileSuffix"`
	Strategies          *Strategies           `yaml:"strategies"`
	InFolder            bool                  `yaml:"inFolder"`
	FolderType          string                `yaml:"folderType"`
	FolderContentType   string                `yaml:"folderContentType"`
	StrictDirectoryName bool                  `yaml:"strictDirectoryName"`
	Children            map[string]typeFormat `yaml:"children"`
	AliasFor            string                `yaml:"aliasFor"`
}

// Parse builds a registry from YAML:
//
//	types:
//	  apexclass:
//	    name: ApexClass
//	    directoryName: classes
//	    suffix: cls
//	    strategies:
//	      adapter: matchingContentFile
//
// Child types are declared inline under their parent's "children" key.
func Parse(data []byte) (*Registry, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", mdsource.ErrInvalidRegistry, err)
	}
	if len(f.Types) == 0 {
		return nil, fmt.Errorf("%w: no types defined", mdsource.ErrInvalidRegistry)
	}

	types := make(map[string]*MetadataType)
	var errs []error
	for _, id := range sortedKeys(f.Types) {
		if _, err := addType(types, id, f.Types[id], nil); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", mdsource.ErrInvalidRegistry, errors.Join(errs...))
	}
	return New(types)
}

func addType(types map[string]*MetadataType, id string, tf typeFormat, parent *MetadataType) (*MetadataType, error) {
	id = normalize(id)
	if _, exists := types[id]; exists {
		return nil, fmt.Errorf("type %q declared twice", id)
	}
	t := &MetadataType{
		ID:                  id,
		Name:                tf.Name,
		DirectoryName:       tf.DirectoryName,
		Suffix:              tf.Suffix,
		LegacySuffix:        tf.LegacySuffix,
		MetaFileSuffix:      tf.MetaFileSuffix,
		Strategies:          tf.Strategies,
		InFolder:            tf.InFolder,
		FolderType:          normalize(tf.FolderType),
		FolderContentType:   normalize(tf.FolderContentType),
		StrictDirectoryName: tf.StrictDirectoryName,
		AliasFor:            normalize(tf.AliasFor),
	}
	if t.Name == "" {
		t.Name = id
	}
	types[id] = t

	if len(tf.Children) == 0 {
		return t, nil
	}
	t.Children = &Children{
		Types:    make(map[string]*MetadataType),
		Suffixes: make(map[string]string),
	}
	for _, childID := range sortedKeys(tf.Children) {
		child, err := addType(types, childID, tf.Children[childID], t)
		if err != nil {
			return nil, err
		}
		t.Children.Types[child.ID] = child
		if child.Suffix != "" {
			t.Children.Suffixes[child.Suffix] = child.ID
		}
	}
	return t, nil
}

// New builds a registry from already constructed types, deriving and
// validating the indices. Child types must be present in types as well as in
// their parent's Children table.
func New(types map[string]*MetadataType) (*Registry, error) {
	r := &Registry{
		types:         types,
		suffixes:      make(map[string]string),
		childSuffixes: make(map[string]string),
		strictDirs:    make(map[string]string),
		childParent:   make(map[string]string),
	}

	var errs []error
	for _, id := range sortedKeys(types) {
		t := types[id]
		if t.Children == nil {
			continue
		}
		for _, childID := range sortedKeys(t.Children.Types) {
			if _, ok := types[childID]; !ok {
				errs = append(errs, fmt.Errorf("type %q declares unknown child %q", id, childID))
				continue
			}
			r.childParent[childID] = id
		}
		for suffix, childID := range t.Children.Suffixes {
			if _, ok := t.Children.Types[childID]; !ok {
				errs = append(errs, fmt.Errorf("type %q maps suffix %q to unknown child %q", id, suffix, childID))
			}
		}
	}

	for _, id := range sortedKeys(types) {
		t := types[id]
		if t.AliasFor != "" {
			if _, ok := types[t.AliasFor]; !ok {
				errs = append(errs, fmt.Errorf("type %q is an alias for unknown type %q", id, t.AliasFor))
			}
			continue
		}
		if _, isChild := r.childParent[id]; isChild {
			continue
		}
		if t.Suffix != "" {
			if other, taken := r.suffixes[t.Suffix]; taken {
				errs = append(errs, fmt.Errorf("suffix %q is declared by both %q and %q", t.Suffix, other, id))
			} else {
				r.suffixes[t.Suffix] = id
			}
		}
		if t.StrictDirectoryName && t.DirectoryName != "" {
			r.strictDirs[t.DirectoryName] = id
		}
		for _, k := range []string{t.FolderType, t.FolderContentType} {
			if k == "" {
				continue
			}
			if _, ok := types[k]; !ok {
				errs = append(errs, fmt.Errorf("type %q references unknown folder type %q", id, k))
			}
		}
	}

	// Legacy and child suffixes only fill gaps left by primary suffixes.
	for _, id := range sortedKeys(types) {
		t := types[id]
		if t.LegacySuffix != "" && t.AliasFor == "" {
			if _, taken := r.suffixes[t.LegacySuffix]; !taken {
				r.suffixes[t.LegacySuffix] = id
			}
		}
		if parentID, isChild := r.childParent[id]; isChild && t.Suffix != "" {
			if _, taken := r.suffixes[t.Suffix]; taken {
				continue
			}
			if _, taken := r.childSuffixes[t.Suffix]; !taken {
				r.childSuffixes[t.Suffix] = parentID
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", mdsource.ErrInvalidRegistry, errors.Join(errs...))
	}
	return r, nil
}

// Load reads and parses a registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry %s: %w", path, err)
	}
	return r, nil
}

// TypeByName looks a type up by id or display name, ignoring case and
// spaces, and follows alias redirects.
func (r *Registry) TypeByName(name string) (*MetadataType, error) {
	key := normalize(name)
	t, ok := r.types[key]
	if !ok {
		for _, candidate := range r.types {
			if normalize(candidate.Name) == key {
				t, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", mdsource.ErrUnknownType, name)
	}
	if t.AliasFor != "" {
		return r.types[t.AliasFor], nil
	}
	return t, nil
}

// TypeByID returns the type with the exact id, without alias redirection.
func (r *Registry) TypeByID(id string) (*MetadataType, bool) {
	t, ok := r.types[id]
	return t, ok
}

// TypeBySuffix returns the top-level type that owns suffix, or nil.
func (r *Registry) TypeBySuffix(suffix string) *MetadataType {
	if id, ok := r.suffixes[suffix]; ok {
		return r.types[id]
	}
	return nil
}

// ParentTypeByChildSuffix returns the parent of the child type that owns
// suffix, or nil.
func (r *Registry) ParentTypeByChildSuffix(suffix string) *MetadataType {
	if id, ok := r.childSuffixes[suffix]; ok {
		return r.types[id]
	}
	return nil
}

// StrictFolderTypes returns every strict-directory type ordered by id.
func (r *Registry) StrictFolderTypes() []*MetadataType {
	out := make([]*MetadataType, 0, len(r.strictDirs))
	for _, id := range sortedValues(r.strictDirs) {
		out = append(out, r.types[id])
	}
	return out
}

// StrictTypeByDirectory returns the strict type stored under dir, or nil.
func (r *Registry) StrictTypeByDirectory(dir string) *MetadataType {
	if id, ok := r.strictDirs[dir]; ok {
		return r.types[id]
	}
	return nil
}

// FolderContentTypes returns the container types (those declaring a
// folder content type) ordered by id.
func (r *Registry) FolderContentTypes() []*MetadataType {
	var out []*MetadataType
	for _, id := range sortedKeys(r.types) {
		if t := r.types[id]; t.FolderContentType != "" && t.AliasFor == "" {
			out = append(out, t)
		}
	}
	return out
}

// ParentType returns the parent of a child type, or nil for top-level types.
func (r *Registry) ParentType(id string) *MetadataType {
	if parentID, ok := r.childParent[id]; ok {
		return r.types[parentID]
	}
	return nil
}

// Types returns every type, children and aliases included, ordered by id.
func (r *Registry) Types() []*MetadataType {
	out := make([]*MetadataType, 0, len(r.types))
	for _, id := range sortedKeys(r.types) {
		out = append(out, r.types[id])
	}
	return out
}

// Suffixes returns every indexed suffix, sorted.
func (r *Registry) Suffixes() []string {
	seen := make(map[string]struct{}, len(r.suffixes)+len(r.childSuffixes))
	for s := range r.suffixes {
		seen[s] = struct{}{}
	}
	for s := range r.childSuffixes {
		seen[s] = struct{}{}
	}
	return sortedKeys(seen)
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedValues(m map[string]string) []string {
	vals := make([]string, 0, len(m))
	for _, v := range m {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return vals
}
