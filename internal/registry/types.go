package registry

// AdapterKind selects the resolution strategy for a type.
type AdapterKind string

const (
	AdapterDefault           AdapterKind = "default"
	AdapterMatchingContent   AdapterKind = "matchingContentFile"
	AdapterMixedContent      AdapterKind = "mixedContent"
	AdapterBundle            AdapterKind = "bundle"
	AdapterDecomposed        AdapterKind = "decomposed"
	AdapterDigitalExperience AdapterKind = "digitalExperience"
)

// Decomposition describes where a decomposed type keeps its child files.
type Decomposition string

const (
	// DecompositionTopLevel keeps children beside the parent descriptor.
	DecompositionTopLevel Decomposition = "topLevel"
	// DecompositionFolderPerType keeps each child type in its own subfolder.
	DecompositionFolderPerType Decomposition = "folderPerType"
)

// Strategies selects how a type's files are resolved.
type Strategies struct {
	Adapter       AdapterKind   `yaml:"adapter,omitempty" json:"adapter,omitempty"`
	Decomposition Decomposition `yaml:"decomposition,omitempty" json:"decomposition,omitempty"`
}

// Children is a type's child-type table.
type Children struct {
	// Types maps child type id to definition.
	Types map[string]*MetadataType `json:"types"`
	// Suffixes maps child suffix to child type id.
	Suffixes map[string]string `json:"suffixes"`
}

// MetadataType is one registry entry. Values handed out by a Registry are
// shared and must be treated as read-only.
type MetadataType struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	DirectoryName       string      `json:"directoryName,omitempty"`
	Suffix              string      `json:"suffix,omitempty"`
	LegacySuffix        string      `json:"legacySuffix,omitempty"`
	MetaFileSuffix      string      `json:"metaFileSuffix,omitempty"`
	Strategies          *Strategies `json:"strategies,omitempty"`
	InFolder            bool        `json:"inFolder,omitempty"`
	FolderType          string      `json:"folderType,omitempty"`
	FolderContentType   string      `json:"folderContentType,omitempty"`
	StrictDirectoryName bool        `json:"strictDirectoryName,omitempty"`
	Children            *Children   `json:"children,omitempty"`
	AliasFor            string      `json:"aliasFor,omitempty"`
}

// Adapter returns the type's adapter kind, AdapterDefault when unset.
func (t *MetadataType) Adapter() AdapterKind {
	if t.Strategies == nil || t.Strategies.Adapter == "" {
		return AdapterDefault
	}
	return t.Strategies.Adapter
}

// Decomposition returns the type's decomposition style, empty when unset.
func (t *MetadataType) Decomposition() Decomposition {
	if t.Strategies == nil {
		return ""
	}
	return t.Strategies.Decomposition
}

// HasChildren reports whether the type declares any child types.
func (t *MetadataType) HasChildren() bool {
	return t.Children != nil && len(t.Children.Types) > 0
}

// ChildBySuffix returns the child type registered for suffix.
func (t *MetadataType) ChildBySuffix(suffix string) (*MetadataType, bool) {
	if t.Children == nil {
		return nil, false
	}
	id, ok := t.Children.Suffixes[suffix]
	if !ok {
		return nil, false
	}
	child, ok := t.Children.Types[id]
	return child, ok
}

// ChildByMetaFile returns the child type whose descriptor uses the fixed
// file name base.
func (t *MetadataType) ChildByMetaFile(base string) (*MetadataType, bool) {
	if t.Children == nil {
		return nil, false
	}
	for _, id := range sortedKeys(t.Children.Types) {
		child := t.Children.Types[id]
		if child.MetaFileSuffix != "" && child.MetaFileSuffix == base {
			return child, true
		}
	}
	return nil, false
}

// IsFolderType reports whether the type is the container of another type.
func (t *MetadataType) IsFolderType() bool {
	return t.FolderContentType != ""
}
