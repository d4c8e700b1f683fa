package metadata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		path     string
		ok       bool
		fullName string
		suffix   string
	}{
		{"classes/MyClass.cls-meta.xml", true, "MyClass", "cls"},
		{"MyClass.cls-meta.xml", true, "MyClass", "cls"},
		{"layouts/Account-Account Layout.layout-meta.xml", true, "Account-Account Layout", "layout"},
		{"a/Foo.bar.cls-meta.xml", true, "Foo.bar", "cls"},
		{"classes/MyClass.cls", false, "", ""},
		{"reports/A_Folder-meta.xml", false, "", ""},
		{"classes/MyClass.cls-meta.xml.bak", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d, ok := ParseDescriptor(filepath.FromSlash(tt.path))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.fullName, d.FullName)
			assert.Equal(t, tt.suffix, d.Suffix)
		})
	}
}

func TestParseFolderDescriptor(t *testing.T) {
	d, ok := ParseFolderDescriptor(filepath.FromSlash("reports/A_Folder-meta.xml"))
	assert.True(t, ok)
	assert.Equal(t, "A_Folder", d.FullName)
	assert.Equal(t, "reports", d.Suffix)

	_, ok = ParseFolderDescriptor("A_Folder-meta.xml")
	assert.False(t, ok, "a folder descriptor needs a parent directory")

	_, ok = ParseFolderDescriptor(filepath.FromSlash("classes/Foo.cls-meta.xml"))
	assert.False(t, ok, "dotted names are regular descriptors")
}

func TestParseContentDescriptor(t *testing.T) {
	d, ok := ParseContentDescriptor(filepath.FromSlash("labels/CustomLabels.labels"), "labels")
	assert.True(t, ok)
	assert.Equal(t, "CustomLabels", d.FullName)

	_, ok = ParseContentDescriptor(filepath.FromSlash("labels/CustomLabels.labels"), "cls")
	assert.False(t, ok)

	_, ok = ParseContentDescriptor(filepath.FromSlash("x/a.b-meta.xml"), "xml")
	assert.False(t, ok)
}

func TestBaseAndExtName(t *testing.T) {
	assert.Equal(t, "MyClass", BaseName(filepath.FromSlash("classes/MyClass.cls-meta.xml")))
	assert.Equal(t, "myComp", BaseName("myComp"))
	assert.Equal(t, "", BaseName(".forceignore"))
	assert.Equal(t, "xml", ExtName("MyClass.cls-meta.xml"))
	assert.Equal(t, "cls", ExtName("MyClass.cls"))
	assert.Equal(t, "", ExtName("README"))
}

func TestSplitAndJoinPath(t *testing.T) {
	for _, p := range []string{"a/b/c", "/abs/path", "single"} {
		native := filepath.FromSlash(p)
		assert.Equal(t, native, JoinPath(SplitPath(native)))
	}

	parts := SplitPath(filepath.FromSlash("force-app/kathys/A/x.kathy-meta.xml"))
	assert.Equal(t, 1, LastIndex(parts, "kathys"))
	assert.Equal(t, -1, LastIndex(parts, "missing"))
	assert.True(t, ContainsSegment(filepath.FromSlash("a/lwc/b"), "lwc"))
	assert.False(t, ContainsSegment(filepath.FromSlash("a/lwcx/b"), "lwc"))
}
