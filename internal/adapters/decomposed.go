package adapters

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/metadata"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// decomposedAdapter handles a parent descriptor accompanied by child
// descriptors, all inside the parent's folder. Children sit beside the parent
// (topLevel) or in one subfolder per child type (folderPerType):
//
//	objects/Account/Account.object-meta.xml
//	objects/Account/fields/Rating__c.field-meta.xml
//
// A child found without its parent descriptor is attached to a placeholder
// parent that has a name and content but no descriptor.
type decomposedAdapter struct {
	*mixedContentAdapter
}

func newDecomposedAdapter(b *base) *decomposedAdapter {
	return &decomposedAdapter{mixedContentAdapter: newMixedContentAdapter(b, true)}
}

func (a *decomposedAdapter) allowsDescriptorAsSoleFile() bool { return false }

// locateDescriptor only accepts a descriptor carrying the parent's own
// suffix, so a child named after its parent is never taken for it.
func (a *decomposedAdapter) locateDescriptor(trigger string) (string, error) {
	root := a.trimPathToContent(trigger)
	entries, err := a.tree.ReadDirectory(root)
	if err != nil {
		return "", nil
	}
	name := filepath.Base(root)
	for _, entry := range entries {
		d, ok := metadata.ParseDescriptor(entry)
		if ok && d.FullName == name && d.Suffix == a.typ.Suffix {
			return filepath.Join(root, entry), nil
		}
	}
	return "", nil
}

func (a *decomposedAdapter) populate(trigger string, draft *component.Options, _ bool) (*component.Component, error) {
	contentPath := a.trimPathToContent(trigger)

	if d, ok := metadata.ParseDescriptor(trigger); ok {
		if childType, isChild := a.typ.ChildBySuffix(d.Suffix); isChild {
			parent := a.session.parent(a.typ.ID, contentPath, func() *component.Component {
				if draft != nil {
					opts := *draft
					opts.Content = contentPath
					return a.newComponent(opts)
				}
				return a.newComponent(component.Options{
					Name:    metadata.BaseName(contentPath),
					Type:    a.typ,
					Content: contentPath,
				})
			})
			return a.newComponent(component.Options{
				Name:       d.FullName,
				Type:       childType,
				Descriptor: trigger,
				Parent:     parent,
			}), nil
		}
		if draft == nil {
			return nil, &mdsource.TypeInferenceError{
				Path:   trigger,
				Reason: fmt.Sprintf("%s is not a recognized child of %s", d.Suffix, a.typ.Name),
			}
		}
	}

	if draft == nil {
		return nil, nil
	}
	draft.Content = contentPath
	return a.session.parent(a.typ.ID, contentPath, func() *component.Component {
		return a.newComponent(*draft)
	}), nil
}
