package metadata

import (
	"path/filepath"
	"regexp"
	"strings"
)

// MetaXMLSuffix ends every descriptor file name.
const MetaXMLSuffix = "-meta.xml"

var (
	descriptorPattern       = regexp.MustCompile(`(.+)\.(.+)-meta\.xml$`)
	folderDescriptorPattern = regexp.MustCompile(`(.+)-meta\.xml$`)
	contentPattern          = regexp.MustCompile(`(.+)\.(.+)$`)
)

// Descriptor is the name information carried by a descriptor file name.
type Descriptor struct {
	FullName string
	Suffix   string
	Path     string
}

// ParseDescriptor parses "<fullName>.<suffix>-meta.xml". The match is greedy,
// so "Foo.bar.cls-meta.xml" yields fullName "Foo.bar" and suffix "cls".
func ParseDescriptor(path string) (Descriptor, bool) {
	m := descriptorPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return Descriptor{}, false
	}
	return Descriptor{FullName: m[1], Suffix: m[2], Path: path}, true
}

// ParseFolderDescriptor parses the legacy folder descriptor form
// "<folder>-meta.xml" where the name carries no dot. The suffix reported is
// the name of the directory holding the file.
func ParseFolderDescriptor(path string) (Descriptor, bool) {
	m := folderDescriptorPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil || strings.Contains(m[1], ".") {
		return Descriptor{}, false
	}
	parts := SplitPath(path)
	if len(parts) < 2 {
		return Descriptor{}, false
	}
	return Descriptor{FullName: m[1], Suffix: parts[len(parts)-2], Path: path}, true
}

// ParseContentDescriptor treats a content file as its own descriptor when its
// extension is one of the given suffixes.
func ParseContentDescriptor(path string, suffixes ...string) (Descriptor, bool) {
	base := filepath.Base(path)
	if strings.HasSuffix(base, MetaXMLSuffix) {
		return Descriptor{}, false
	}
	m := contentPattern.FindStringSubmatch(base)
	if m == nil {
		return Descriptor{}, false
	}
	for _, s := range suffixes {
		if s != "" && m[2] == s {
			return Descriptor{FullName: m[1], Suffix: m[2], Path: path}, true
		}
	}
	return Descriptor{}, false
}

// IsDescriptor reports whether path names a "<name>.<suffix>-meta.xml" file.
func IsDescriptor(path string) bool {
	_, ok := ParseDescriptor(path)
	return ok
}

// BaseName returns the file name up to its first dot.
func BaseName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// ExtName returns the last extension of path without the dot.
func ExtName(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// TrimMetaXMLSuffix strips a trailing "-meta.xml".
func TrimMetaXMLSuffix(path string) string {
	return strings.TrimSuffix(path, MetaXMLSuffix)
}

// SplitPath splits a cleaned path into its segments. A leading separator
// produces an empty first segment so that joining the parts restores the path.
func SplitPath(path string) []string {
	return strings.Split(filepath.Clean(path), string(filepath.Separator))
}

// JoinPath is the inverse of SplitPath.
func JoinPath(parts []string) string {
	if len(parts) == 1 && parts[0] == "" {
		return string(filepath.Separator)
	}
	return strings.Join(parts, string(filepath.Separator))
}

// LastIndex returns the index of the last segment equal to name, or -1.
func LastIndex(parts []string, name string) int {
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == name {
			return i
		}
	}
	return -1
}

// ContainsSegment reports whether any segment of path equals name.
func ContainsSegment(path, name string) bool {
	return name != "" && LastIndex(SplitPath(path), name) >= 0
}
