package adapters

import (
	"path/filepath"

	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/metadata"
	"github.com/vvka-141/mdsource/internal/registry"
)

// digitalExperienceAdapter handles bundles of bundles. The outer bundle is
// named after its section and folder; each inner entry is a folder two
// levels further down whose descriptor has a fixed file name:
//
//	digitalExperiences/site/foo1/foo1.digitalExperience-meta.xml   bundle "site/foo1"
//	digitalExperiences/site/foo1/sfdc_cms__view/home/_meta.json     entry "sfdc_cms__view/home"
//	digitalExperiences/site/foo1/sfdc_cms__view/home/content.json
//
// The same adapter serves both levels; a type without a parent is the outer
// bundle.
type digitalExperienceAdapter struct {
	*base
}

func (a *digitalExperienceAdapter) bundleType() *registry.MetadataType {
	if parent := a.reg.ParentType(a.typ.ID); parent != nil {
		return parent
	}
	return a.typ
}

func (a *digitalExperienceAdapter) isBundle() bool {
	return a.reg.ParentType(a.typ.ID) == nil
}

// bundleDir trims path to "<dir>/<section>/<bundle>".
func (a *digitalExperienceAdapter) bundleDir(path string) string {
	parts := metadata.SplitPath(path)
	idx := metadata.LastIndex(parts, a.bundleType().DirectoryName)
	if idx < 0 || len(parts) < idx+3 {
		return ""
	}
	return metadata.JoinPath(parts[:idx+3])
}

// entryDir trims path to "<dir>/<section>/<bundle>/<kind>/<entry>".
func (a *digitalExperienceAdapter) entryDir(path string) string {
	parts := metadata.SplitPath(path)
	idx := metadata.LastIndex(parts, a.bundleType().DirectoryName)
	if idx < 0 || len(parts) < idx+5 {
		return ""
	}
	return metadata.JoinPath(parts[:idx+5])
}

func (a *digitalExperienceAdapter) bundleDescriptor(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+"."+a.bundleType().Suffix+metadata.MetaXMLSuffix)
}

func (a *digitalExperienceAdapter) locateDescriptor(trigger string) (string, error) {
	if a.isBundle() {
		dir := a.bundleDir(trigger)
		if dir == "" {
			return "", nil
		}
		if desc := a.bundleDescriptor(dir); a.tree.Exists(desc) {
			return desc, nil
		}
		return "", nil
	}

	dir := a.entryDir(trigger)
	if dir == "" || a.typ.MetaFileSuffix == "" {
		return "", nil
	}
	if desc := filepath.Join(dir, a.typ.MetaFileSuffix); a.tree.Exists(desc) {
		return desc, nil
	}
	return "", nil
}

// twoLevelName joins the last two segments of dir.
func twoLevelName(dir string) string {
	return filepath.Base(filepath.Dir(dir)) + "/" + filepath.Base(dir)
}

func (a *digitalExperienceAdapter) componentName(desc metadata.Descriptor) string {
	return twoLevelName(filepath.Dir(desc.Path))
}

func (a *digitalExperienceAdapter) populate(trigger string, draft *component.Options, _ bool) (*component.Component, error) {
	if a.isBundle() {
		if draft == nil {
			return nil, nil
		}
		draft.Content = filepath.Dir(draft.Descriptor)
		return a.session.parent(a.typ.ID, draft.Content, func() *component.Component {
			return a.newComponent(*draft)
		}), nil
	}

	content := a.entryDir(trigger)
	if content == "" || !a.tree.Exists(content) {
		return nil, a.expectedContent(trigger)
	}
	if draft == nil {
		draft = &component.Options{Name: twoLevelName(content), Type: a.typ}
	}
	draft.Content = content
	draft.Parent = a.bundleFor(content)
	return a.newComponent(*draft), nil
}

// bundleFor builds the outer bundle an entry directory belongs to.
func (a *digitalExperienceAdapter) bundleFor(entry string) *component.Component {
	dir := filepath.Dir(filepath.Dir(entry))
	bundle := a.bundleType()
	return a.session.parent(bundle.ID, dir, func() *component.Component {
		opts := component.Options{
			Name:    twoLevelName(dir),
			Type:    bundle,
			Content: dir,
		}
		if desc := a.bundleDescriptor(dir); a.tree.Exists(desc) {
			opts.Descriptor = desc
		}
		return a.newComponent(opts)
	})
}
