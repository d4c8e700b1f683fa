package adapters

import (
	"path/filepath"

	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/internal/metadata"
)

// mixedContentAdapter handles content that is either one file of any
// extension or a whole directory, next to a descriptor sharing its base name:
//
//	staticresources/logo.png
//	staticresources/logo.resource-meta.xml
//	staticresources/app/            (directory content)
//	staticresources/app.resource-meta.xml
type mixedContentAdapter struct {
	*base
	// ownFolder is set for layouts that keep descriptor and content inside
	// a folder named after the component.
	ownFolder bool
}

func newMixedContentAdapter(b *base, ownFolder bool) *mixedContentAdapter {
	return &mixedContentAdapter{base: b, ownFolder: ownFolder}
}

func (a *mixedContentAdapter) allowsDescriptorAsSoleFile() bool { return true }

// trimPathToContent cuts path down to the component's root entry directly
// beneath the type directory (beneath the folder for in-folder types).
func (a *mixedContentAdapter) trimPathToContent(path string) string {
	parts := metadata.SplitPath(path)
	idx := metadata.LastIndex(parts, a.typ.DirectoryName)
	if idx < 0 {
		return path
	}
	end := idx + 2
	if a.typ.InFolder {
		end = idx + 3
	}
	if end > len(parts) {
		return path
	}
	return metadata.JoinPath(parts[:end])
}

func (a *mixedContentAdapter) locateDescriptor(trigger string) (string, error) {
	root := a.trimPathToContent(trigger)
	if a.ownFolder {
		found, _ := a.tree.Find(filesystem.FindDescriptor, filepath.Base(root), root)
		return found, nil
	}
	found, _ := a.tree.Find(filesystem.FindDescriptor, metadata.BaseName(root), filepath.Dir(root))
	return found, nil
}

func (a *mixedContentAdapter) populate(trigger string, draft *component.Options, _ bool) (*component.Component, error) {
	content := a.trimPathToContent(trigger)
	if draft != nil && content == draft.Descriptor {
		content, _ = a.tree.Find(filesystem.FindContent, metadata.BaseName(content), filepath.Dir(content))
	}
	if content == "" || !a.tree.Exists(content) {
		return nil, a.expectedContent(trigger)
	}

	if draft == nil {
		draft = &component.Options{Name: metadata.BaseName(content), Type: a.typ}
	}
	draft.Content = content
	return a.newComponent(*draft), nil
}

// bundleAdapter handles components living in a private, self-named folder
// that holds both the descriptor and every content file.
type bundleAdapter struct {
	*mixedContentAdapter
}

func newBundleAdapter(b *base) *bundleAdapter {
	return &bundleAdapter{mixedContentAdapter: newMixedContentAdapter(b, true)}
}

func (a *bundleAdapter) populate(trigger string, draft *component.Options, isResolvingSource bool) (*component.Component, error) {
	if isResolvingSource && a.tree.IsDirectory(trigger) {
		entries, err := a.tree.ReadDirectory(trigger)
		if err == nil && len(entries) == 0 {
			return nil, nil
		}
	}
	return a.mixedContentAdapter.populate(trigger, draft, isResolvingSource)
}
