package adapters

import (
	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/metadata"
)

// defaultAdapter handles types that are a single descriptor with no content.
type defaultAdapter struct {
	*base
}

func (a *defaultAdapter) locateDescriptor(trigger string) (string, error) {
	return trigger, nil
}

func (a *defaultAdapter) populate(_ string, draft *component.Options, _ bool) (*component.Component, error) {
	if draft == nil {
		return nil, nil
	}
	return a.newComponent(*draft), nil
}

// matchingContentAdapter handles a content file paired with a descriptor of
// the same name plus "-meta.xml", like classes/Foo.cls and
// classes/Foo.cls-meta.xml.
type matchingContentAdapter struct {
	*base
}

func (a *matchingContentAdapter) allowsDescriptorAsSoleFile() bool { return true }

func (a *matchingContentAdapter) locateDescriptor(trigger string) (string, error) {
	return trigger + metadata.MetaXMLSuffix, nil
}

func (a *matchingContentAdapter) populate(trigger string, draft *component.Options, _ bool) (*component.Component, error) {
	var content string
	if draft != nil && trigger == draft.Descriptor {
		content = metadata.TrimMetaXMLSuffix(trigger)
	} else if t := a.reg.TypeBySuffix(metadata.ExtName(trigger)); t != nil && t.ID == a.typ.ID {
		content = trigger
	}

	if content == "" || !a.tree.Exists(content) {
		return nil, a.expectedContent(trigger)
	}
	if a.filter.Denies(content) {
		return nil, a.unexpectedIgnore(content, trigger)
	}

	if draft == nil {
		draft = &component.Options{Name: metadata.BaseName(content), Type: a.typ}
	}
	draft.Content = content
	return a.newComponent(*draft), nil
}
