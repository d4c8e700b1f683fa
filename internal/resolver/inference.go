package resolver

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/internal/metadata"
	"github.com/vvka-141/mdsource/internal/registry"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// maxSuggestionDistance bounds the edit distance of suffix suggestions.
const maxSuggestionDistance = 3

// inferType determines the type of path. The attempts run in a fixed order
// and the first hit wins:
//
//  1. a strict-directory type whose directory is on the path and whose
//     suffixes or layout agree with the file
//  2. the descriptor suffix, own or a child's
//  3. a folder descriptor inside a folder container's directory
//  4. the file extension, unless it belongs to a strict-directory type
//  5. the fixed layouts of nested bundles and directory components
//
// A package manifest yields nil without error.
func (r *Resolver) inferType(path string) (*registry.MetadataType, error) {
	if metadata.IsProbablyPackageManifest(r.tree, path) {
		r.opts.logger.Verbose("skipping package manifest %s", path)
		return nil, nil
	}

	if t := r.strictFolderType(path); t != nil {
		return t, nil
	}

	if d, ok := metadata.ParseDescriptor(path); ok {
		if t := r.reg.TypeBySuffix(d.Suffix); t != nil {
			return t, nil
		}
		if t := r.reg.ParentTypeByChildSuffix(d.Suffix); t != nil {
			return t, nil
		}
	}

	if _, ok := metadata.ParseFolderDescriptor(path); ok {
		parent := filepath.Base(filepath.Dir(path))
		for _, t := range r.reg.FolderContentTypes() {
			if t.DirectoryName == parent {
				return t, nil
			}
		}
	}

	if ext := metadata.ExtName(path); ext != "" {
		if t := r.reg.TypeBySuffix(ext); t != nil && !t.StrictDirectoryName {
			return t, nil
		}
	}

	if t := r.nestedBundleType(path); t != nil {
		return t, nil
	}
	if r.tree.IsDirectory(path) {
		if t := r.componentDirectoryType(path); t != nil {
			return t, nil
		}
	}

	return nil, &mdsource.TypeInferenceError{
		Path:        path,
		Suggestions: r.suggestSuffixes(path),
	}
}

// strictFolderType returns the strict-directory type confirmed by path. The
// in-folder type's own folder descriptors, sitting directly in its
// directory, are left to the later attempts.
func (r *Resolver) strictFolderType(path string) *registry.MetadataType {
	parts := metadata.SplitPath(path)
	parent := filepath.Base(filepath.Dir(path))
	for _, t := range r.reg.StrictFolderTypes() {
		if metadata.LastIndex(parts, t.DirectoryName) < 0 {
			continue
		}
		if t.InFolder && parent == t.DirectoryName {
			continue
		}
		if confirmsStrictType(t, path) {
			return t
		}
	}
	return nil
}

func confirmsStrictType(t *registry.MetadataType, path string) bool {
	switch t.Adapter() {
	case registry.AdapterMixedContent, registry.AdapterBundle:
		return true
	}
	for _, s := range []string{t.Suffix, t.LegacySuffix} {
		if s == "" {
			continue
		}
		if strings.HasSuffix(path, "."+s) || strings.HasSuffix(path, "."+s+metadata.MetaXMLSuffix) {
			return true
		}
	}
	if t.Children != nil {
		for s := range t.Children.Suffixes {
			if strings.HasSuffix(path, "."+s+metadata.MetaXMLSuffix) {
				return true
			}
		}
	}
	return false
}

// nestedBundleType classifies paths inside a nested bundle by depth alone:
//
//	<dir>/<section>/<bundle>                     outer bundle
//	<dir>/<section>/<bundle>/<file>              outer bundle
//	<dir>/<section>/<bundle>/<kind>/<entry>/...  inner entry
func (r *Resolver) nestedBundleType(path string) *registry.MetadataType {
	parts := metadata.SplitPath(path)
	for _, t := range r.reg.Types() {
		if t.Adapter() != registry.AdapterDigitalExperience || r.reg.ParentType(t.ID) != nil {
			continue
		}
		idx := metadata.LastIndex(parts, t.DirectoryName)
		if idx < 0 {
			continue
		}
		switch n := len(parts); {
		case n >= idx+5:
			if child := digitalExperienceChild(t); child != nil {
				return child
			}
		case n == idx+3 || n == idx+4:
			return t
		}
	}
	return nil
}

func digitalExperienceChild(t *registry.MetadataType) *registry.MetadataType {
	if t.Children == nil {
		return nil
	}
	for _, id := range sortedChildIDs(t) {
		if child := t.Children.Types[id]; child.Adapter() == registry.AdapterDigitalExperience {
			return child
		}
	}
	return nil
}

func sortedChildIDs(t *registry.MetadataType) []string {
	ids := make([]string, 0, len(t.Children.Types))
	for id := range t.Children.Types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// componentDirectoryType returns the type of the component that dir holds
// in its entirety, or nil. That is the case when dir is non-empty and
//
//   - it holds a descriptor named after itself for a bundle, decomposed or
//     nested bundle type, and sits right beneath the type directory (beneath
//     a folder for in-folder types);
//   - a sibling descriptor named after it declares a mixed-content type at
//     that same depth; or
//   - it is an inner entry of a nested bundle.
func (r *Resolver) componentDirectoryType(dir string) *registry.MetadataType {
	entries, err := r.tree.ReadDirectory(dir)
	if err != nil || len(entries) == 0 {
		return nil
	}
	name := filepath.Base(dir)
	parts := metadata.SplitPath(dir)

	for _, entry := range entries {
		d, ok := metadata.ParseDescriptor(entry)
		if !ok || d.FullName != name {
			continue
		}
		// Child descriptors named after the directory have no top-level type.
		t := r.reg.TypeBySuffix(d.Suffix)
		if t == nil || !atComponentDepth(t, parts) {
			continue
		}
		switch t.Adapter() {
		case registry.AdapterBundle, registry.AdapterDecomposed, registry.AdapterDigitalExperience:
			return t
		}
	}

	if desc, ok := r.tree.Find(filesystem.FindDescriptor, name, filepath.Dir(dir)); ok {
		if t := r.descriptorType(desc); t != nil && t.Adapter() == registry.AdapterMixedContent && atComponentDepth(t, parts) {
			return t
		}
	}

	for _, t := range r.reg.Types() {
		if t.Adapter() != registry.AdapterDigitalExperience || r.reg.ParentType(t.ID) != nil {
			continue
		}
		if idx := metadata.LastIndex(parts, t.DirectoryName); idx >= 0 && len(parts) == idx+5 {
			return digitalExperienceChild(t)
		}
	}
	return nil
}

func (r *Resolver) descriptorType(path string) *registry.MetadataType {
	d, ok := metadata.ParseDescriptor(path)
	if !ok {
		return nil
	}
	return r.reg.TypeBySuffix(d.Suffix)
}

// atComponentDepth reports whether the last segment of parts sits directly
// beneath t's directory, or beneath a folder in it for in-folder types.
func atComponentDepth(t *registry.MetadataType, parts []string) bool {
	offset := 1
	if t.InFolder {
		offset = 2
	}
	idx := metadata.LastIndex(parts, t.DirectoryName)
	return idx >= 0 && idx == len(parts)-1-offset
}

// suggestSuffixes returns the registered suffixes closest to the one on
// path.
func (r *Resolver) suggestSuffixes(path string) []string {
	suffix := metadata.ExtName(path)
	if d, ok := metadata.ParseDescriptor(path); ok {
		suffix = d.Suffix
	}
	if suffix == "" {
		return nil
	}

	best := maxSuggestionDistance + 1
	var out []string
	for _, s := range r.reg.Suffixes() {
		d := levenshtein.Distance(strings.ToLower(suffix), strings.ToLower(s), nil)
		switch {
		case d < best:
			best = d
			out = []string{s}
		case d == best:
			out = append(out, s)
		}
	}
	return out
}
