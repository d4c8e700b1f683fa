package component_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mdsource/internal/component"
	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/internal/files/ignore"
	"github.com/vvka-141/mdsource/internal/registry/registrytest"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

func p(s string) string { return filepath.FromSlash(s) }

func TestComponent_FullNameAndMember(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.NewMemoryFileSystem()

	parent := component.New(component.Options{
		Name: "a",
		Type: registrytest.Type(reg, registrytest.DecomposedTopLevel),
	}, tree, nil)
	child := component.New(component.Options{
		Name:   "child1",
		Type:   registrytest.Type(reg, registrytest.DecomposedTopLevelChild),
		Parent: parent,
	}, tree, nil)

	assert.Equal(t, "a", parent.FullName())
	assert.Equal(t, "a.child1", child.FullName())
	assert.Equal(t, mdsource.Member{FullName: "a.child1", Type: "G"}, child.Member())
	assert.Same(t, parent, child.Parent())
	assert.Equal(t, "G:a.child1", child.String())
	assert.NotEqual(t, parent.ID(), child.ID())
}

func TestComponent_ChildrenTopLevel(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths(
		"decomposedTopLevels/a/a.dtl-meta.xml",
		"decomposedTopLevels/a/child1.g-meta.xml",
		"decomposedTopLevels/a/notes.txt",
	)

	parent := component.New(component.Options{
		Name:       "a",
		Type:       registrytest.Type(reg, registrytest.DecomposedTopLevel),
		Descriptor: p("decomposedTopLevels/a/a.dtl-meta.xml"),
		Content:    p("decomposedTopLevels/a"),
	}, tree, nil)

	children, err := parent.Children()
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "a.child1", children[0].FullName())
	assert.Equal(t, registrytest.DecomposedTopLevelChild, children[0].Type().ID)
	assert.Equal(t, p("decomposedTopLevels/a/child1.g-meta.xml"), children[0].Descriptor())
	assert.Same(t, parent, children[0].Parent())

	again, err := parent.Children()
	require.NoError(t, err)
	assert.NotSame(t, children[0], again[0], "children are recomputed, not cached")
	assert.True(t, children[0].Equal(again[0]))
}

func TestComponent_ChildrenFolderPerType(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths(
		"reginas/r/r.regina-meta.xml",
		"reginas/r/xs/x1.x-meta.xml",
		"reginas/r/xs/x2.x-meta.xml",
		"reginas/r/ys/y1.y-meta.xml",
	)

	parent := component.New(component.Options{
		Name:       "r",
		Type:       registrytest.Type(reg, registrytest.ReginaKing),
		Descriptor: p("reginas/r/r.regina-meta.xml"),
	}, tree, nil)

	children, err := parent.Children()
	require.NoError(t, err)
	var names []string
	for _, c := range children {
		names = append(names, c.Member().Type+":"+c.FullName())
	}
	assert.Equal(t, []string{"X:r.x1", "X:r.x2", "Y:r.y1"}, names)
}

func TestComponent_ChildrenHonourIgnore(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths(
		"reginas/r/r.regina-meta.xml",
		"reginas/r/xs/x1.x-meta.xml",
		"reginas/r/ys/y1.y-meta.xml",
	)
	tree.AddFile("sfdx-project.json", []byte("{}"))
	tree.AddFile(".forceignore", []byte("ys/\n"))
	filter := ignore.FindAndCreate(tree, ".")

	parent := component.New(component.Options{
		Name:       "r",
		Type:       registrytest.Type(reg, registrytest.ReginaKing),
		Descriptor: p("reginas/r/r.regina-meta.xml"),
	}, tree, filter)

	children, err := parent.Children()
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "r.x1", children[0].FullName())
}

func TestComponent_ChildrenOfPlaceholderUseContent(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths("decomposedTopLevels/a/child1.g-meta.xml")

	placeholder := component.New(component.Options{
		Name:    "a",
		Type:    registrytest.Type(reg, registrytest.DecomposedTopLevel),
		Content: p("decomposedTopLevels/a"),
	}, tree, nil)
	assert.True(t, placeholder.IsPlaceholder())

	children, err := placeholder.Children()
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "a.child1", children[0].FullName())
}

func TestComponent_NoChildren(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths("matchingContentFiles/a.mcf", "matchingContentFiles/a.mcf-meta.xml")

	c := component.New(component.Options{
		Name:       "a",
		Type:       registrytest.Type(reg, registrytest.MatchingContentFile),
		Descriptor: p("matchingContentFiles/a.mcf-meta.xml"),
		Content:    p("matchingContentFiles/a.mcf"),
	}, tree, nil)

	children, err := c.Children()
	require.NoError(t, err)
	assert.Nil(t, children)

	child := component.New(component.Options{
		Name:   "x",
		Type:   registrytest.Type(reg, registrytest.DecomposedTopLevel),
		Parent: c,
	}, tree, nil)
	children, err = child.Children()
	require.NoError(t, err)
	assert.Nil(t, children, "a component with a parent has no children")
}

func TestComponent_DigitalExperienceChildren(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths(
		"digitalExperiences/site/foo1/foo1.digitalExperience-meta.xml",
		"digitalExperiences/site/foo1/sfdc_cms__view/home/_meta.json",
		"digitalExperiences/site/foo1/sfdc_cms__view/home/content.json",
		"digitalExperiences/site/foo1/sfdc_cms__route/home/_meta.json",
	)

	bundle := component.New(component.Options{
		Name:       "site/foo1",
		Type:       registrytest.Type(reg, registrytest.DigitalExperienceBundle),
		Descriptor: p("digitalExperiences/site/foo1/foo1.digitalExperience-meta.xml"),
		Content:    p("digitalExperiences/site/foo1"),
	}, tree, nil)

	children, err := bundle.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "site/foo1.sfdc_cms__route/home", children[0].FullName())
	assert.Equal(t, "site/foo1.sfdc_cms__view/home", children[1].FullName())
	assert.Equal(t, p("digitalExperiences/site/foo1/sfdc_cms__view/home"), children[1].Content())
}

func TestComponent_WalkContent(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths(
		"lwc/myComp/myComp.js",
		"lwc/myComp/myComp.js-meta.xml",
		"lwc/myComp/myComp.html",
		"lwc/myComp/__tests__/myComp.test.js",
		"lwc/myComp/.eslintrc",
	)
	tree.AddFile("sfdx-project.json", []byte("{}"))
	tree.AddFile(".forceignore", []byte("**/__tests__/**\n"))
	filter := ignore.FindAndCreate(tree, ".")

	c := component.New(component.Options{
		Name:       "myComp",
		Type:       registrytest.Type(reg, registrytest.Bundle),
		Descriptor: p("lwc/myComp/myComp.js-meta.xml"),
		Content:    p("lwc/myComp"),
	}, tree, filter)

	files, err := c.WalkContent()
	require.NoError(t, err)
	assert.Equal(t, []string{p("lwc/myComp/myComp.html"), p("lwc/myComp/myComp.js")}, files)
}

func TestComponent_WalkContentSingleFile(t *testing.T) {
	reg := registrytest.Registry()
	tree := filesystem.FromFilePaths("matchingContentFiles/a.mcf")

	c := component.New(component.Options{
		Name:    "a",
		Type:    registrytest.Type(reg, registrytest.MatchingContentFile),
		Content: p("matchingContentFiles/a.mcf"),
	}, tree, nil)
	files, err := c.WalkContent()
	require.NoError(t, err)
	assert.Equal(t, []string{p("matchingContentFiles/a.mcf")}, files)

	noContent := component.New(component.Options{Name: "b", Type: c.Type()}, tree, nil)
	files, err = noContent.WalkContent()
	require.NoError(t, err)
	assert.Nil(t, files)
	assert.Empty(t, noContent.Files())
}
