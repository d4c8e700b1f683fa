package filesystem_test

import (
	"archive/zip"
	"bytes"
	"context"
	"embed"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mdsource/internal/files/filesystem"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

//go:embed testdata
var testdataFS embed.FS

// fixture is the layout every tree implementation is checked against.
var fixture = map[string]string{
	"classes/MyClass.cls":           "public class MyClass {}",
	"classes/MyClass.cls-meta.xml":  "<ApexClass/>",
	"classes/Other.cls":             "public class Other {}",
	"lwc/myComp/myComp.js":          "export default class MyComp {}",
	"lwc/myComp/myComp.js-meta.xml": "<LightningComponentBundle/>",
	"lwc/myComp/myComp.html":        "<template></template>",
}

func memoryTree(t *testing.T) filesystem.Tree {
	t.Helper()
	var entries []filesystem.VirtualEntry
	for p, content := range fixture {
		entries = append(entries, filesystem.VirtualEntry{Path: filepath.FromSlash(p), Data: []byte(content)})
	}
	entries = append(entries, filesystem.VirtualEntry{Path: "lwc/empty/"})
	return filesystem.NewMemoryFileSystem(entries...)
}

func osTree(t *testing.T) (filesystem.Tree, string) {
	t.Helper()
	root := t.TempDir()
	for p, content := range fixture {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lwc", "empty"), 0755))
	return filesystem.NewOSFileSystem(), root
}

func zipTree(t *testing.T) filesystem.Tree {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for p, content := range fixture {
		w, err := zw.Create(p)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	_, err := zw.Create("lwc/empty/")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tree, err := filesystem.NewZipFileSystem(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return tree
}

func forEachTree(t *testing.T, fn func(t *testing.T, tree filesystem.Tree, root string)) {
	t.Run("memory", func(t *testing.T) { fn(t, memoryTree(t), "") })
	t.Run("os", func(t *testing.T) {
		tree, root := osTree(t)
		fn(t, tree, root)
	})
	t.Run("zip", func(t *testing.T) { fn(t, zipTree(t), "") })
	t.Run("cached", func(t *testing.T) {
		cached, err := filesystem.NewCachedFileSystem(memoryTree(t), 16)
		require.NoError(t, err)
		fn(t, cached, "")
	})
}

func TestTree_ExistsAndIsDirectory(t *testing.T) {
	forEachTree(t, func(t *testing.T, tree filesystem.Tree, root string) {
		j := func(p string) string { return filepath.Join(root, filepath.FromSlash(p)) }

		assert.True(t, tree.Exists(j("classes")))
		assert.True(t, tree.IsDirectory(j("classes")))
		assert.True(t, tree.Exists(j("classes/MyClass.cls")))
		assert.False(t, tree.IsDirectory(j("classes/MyClass.cls")))
		assert.True(t, tree.IsDirectory(j("lwc/empty")), "explicit empty directory")
		assert.False(t, tree.Exists(j("classes/Missing.cls")))
		assert.False(t, tree.IsDirectory(j("nope")))
	})
}

func TestTree_ReadDirectorySorted(t *testing.T) {
	forEachTree(t, func(t *testing.T, tree filesystem.Tree, root string) {
		names, err := tree.ReadDirectory(filepath.Join(root, "classes"))
		require.NoError(t, err)
		assert.Equal(t, []string{"MyClass.cls", "MyClass.cls-meta.xml", "Other.cls"}, names)

		names, err = tree.ReadDirectory(filepath.Join(root, "lwc"))
		require.NoError(t, err)
		assert.Equal(t, []string{"empty", "myComp"}, names)

		names, err = tree.ReadDirectory(filepath.Join(root, "lwc", "empty"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestTree_ReadDirectoryErrors(t *testing.T) {
	forEachTree(t, func(t *testing.T, tree filesystem.Tree, root string) {
		_, err := tree.ReadDirectory(filepath.Join(root, "missing"))
		assert.True(t, errors.Is(err, mdsource.ErrNotFound), "missing: %v", err)

		_, err = tree.ReadDirectory(filepath.Join(root, "classes", "MyClass.cls"))
		assert.True(t, errors.Is(err, mdsource.ErrNotFound), "file: %v", err)
	})
}

func TestTree_ReadFile(t *testing.T) {
	forEachTree(t, func(t *testing.T, tree filesystem.Tree, root string) {
		data, err := tree.ReadFile(context.Background(), filepath.Join(root, "classes", "MyClass.cls"))
		require.NoError(t, err)
		assert.Equal(t, "public class MyClass {}", string(data))

		_, err = tree.ReadFile(context.Background(), filepath.Join(root, "classes", "Nope.cls"))
		assert.Error(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = tree.ReadFile(ctx, filepath.Join(root, "classes", "MyClass.cls"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTree_Find(t *testing.T) {
	forEachTree(t, func(t *testing.T, tree filesystem.Tree, root string) {
		dir := filepath.Join(root, "classes")

		got, ok := tree.Find(filesystem.FindDescriptor, "MyClass", dir)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "MyClass.cls-meta.xml"), got)

		got, ok = tree.Find(filesystem.FindContent, "MyClass", dir)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "MyClass.cls"), got)

		_, ok = tree.Find(filesystem.FindDescriptor, "Other", dir)
		assert.False(t, ok)

		_, ok = tree.Find(filesystem.FindContent, "MyClass", filepath.Join(root, "missing"))
		assert.False(t, ok)
	})
}

func TestFind_TieBreakFollowsSortedOrder(t *testing.T) {
	tree := filesystem.FromFilePaths(
		"static/logo.resource-meta.xml",
		"static/logo.png",
		"static/logo/",
	)
	dir := "static"

	got, ok := tree.Find(filesystem.FindContent, "logo", dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "logo"), got, "directory sorts before logo.png")
}

func TestZipFileSystem_ReadFileSyncNotImplemented(t *testing.T) {
	tree := zipTree(t)
	_, err := tree.ReadFileSync(filepath.Join("classes", "MyClass.cls"))
	assert.True(t, errors.Is(err, mdsource.ErrNotImplemented))
}

func TestZipFileSystem_ImpliedDirectories(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("a/b/c/file.txt")
	require.NoError(t, err)
	_, _ = w.Write([]byte("x"))
	require.NoError(t, zw.Close())

	tree, err := filesystem.NewZipFileSystem(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	assert.True(t, tree.IsDirectory("a"))
	assert.True(t, tree.IsDirectory(filepath.Join("a", "b", "c")))
	names, err := tree.ReadDirectory(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)
}

func TestEmbedFileSystem(t *testing.T) {
	tree, err := filesystem.NewEmbedFileSystem(testdataFS, "testdata/project")
	require.NoError(t, err)

	assert.True(t, tree.Exists("sfdx-project.json"))
	names, err := tree.ReadDirectory(filepath.Join("lwc", "myComp"))
	require.NoError(t, err)
	assert.Equal(t, []string{"myComp.html", "myComp.js", "myComp.js-meta.xml"}, names)

	data, err := tree.ReadFileSync(filepath.Join("classes", "MyClass.cls"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "MyClass")
}

func TestMemoryFileSystem_FromFilePaths(t *testing.T) {
	tree := filesystem.FromFilePaths(
		"force-app/classes/A.cls",
		"force-app/classes/A.cls-meta.xml",
		"force-app/lwc/empty/",
	)

	assert.True(t, tree.IsDirectory("force-app"))
	assert.True(t, tree.IsDirectory("."))
	assert.True(t, tree.IsDirectory(filepath.Join("force-app", "lwc", "empty")))

	data, err := tree.ReadFileSync(filepath.Join("force-app", "classes", "A.cls"))
	require.NoError(t, err)
	assert.Empty(t, data)

	assert.Equal(t, []string{
		filepath.Join("force-app", "classes", "A.cls"),
		filepath.Join("force-app", "classes", "A.cls-meta.xml"),
	}, tree.Paths())
}

func TestMemoryFileSystem_AbsolutePaths(t *testing.T) {
	tree := filesystem.NewMemoryFileSystem()
	tree.AddFile("/proj/classes/A.cls", []byte("x"))

	assert.True(t, tree.IsDirectory("/"))
	names, err := tree.ReadDirectory("/proj")
	require.NoError(t, err)
	assert.Equal(t, []string{"classes"}, names)
}

func TestMemoryFileSystem_ReadFileCopies(t *testing.T) {
	tree := filesystem.NewMemoryFileSystem()
	src := []byte("abc")
	tree.AddFile("f.txt", src)
	src[0] = 'X'

	data, err := tree.ReadFileSync("f.txt")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}
