package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// VirtualEntry describes one path of a virtual tree. A path ending in a
// separator is an explicit (possibly empty) directory; anything else is a
// file whose content is Data.
type VirtualEntry struct {
	Path string
	Data []byte
}

// memoryNode is one file or directory of a MemoryFileSystem.
type memoryNode struct {
	isDir    bool
	data     []byte
	children map[string]struct{}
}

// MemoryFileSystem implements Tree over an in-memory set of entries.
// It is typically rebuilt from a list of paths, for example to resolve
// components whose files were deleted from disk.
type MemoryFileSystem struct {
	nodes map[string]*memoryNode
}

// NewMemoryFileSystem creates a virtual tree holding the given entries.
func NewMemoryFileSystem(entries ...VirtualEntry) *MemoryFileSystem {
	mfs := &MemoryFileSystem{nodes: make(map[string]*memoryNode)}
	for _, e := range entries {
		if isDirectoryEntry(e.Path) {
			mfs.AddDirectory(e.Path)
		} else {
			mfs.AddFile(e.Path, e.Data)
		}
	}
	return mfs
}

// FromFilePaths creates a virtual tree of empty files. Paths ending in a
// separator become empty directories.
func FromFilePaths(paths ...string) *MemoryFileSystem {
	entries := make([]VirtualEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, VirtualEntry{Path: p})
	}
	return NewMemoryFileSystem(entries...)
}

func isDirectoryEntry(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator))
}

// AddFile adds or replaces a file, creating parent directories as needed.
func (mfs *MemoryFileSystem) AddFile(path string, content []byte) {
	path = filepath.Clean(path)
	data := make([]byte, len(content))
	copy(data, content)
	mfs.nodes[path] = &memoryNode{data: data}
	mfs.ensureDirectoriesExist(path)
}

// AddDirectory adds an empty directory, creating parents as needed.
func (mfs *MemoryFileSystem) AddDirectory(path string) {
	path = filepath.Clean(path)
	if n, ok := mfs.nodes[path]; ok && n.isDir {
		return
	}
	mfs.nodes[path] = &memoryNode{isDir: true, children: make(map[string]struct{})}
	mfs.ensureDirectoriesExist(path)
}

// ensureDirectoriesExist registers path with every ancestor directory.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(path string) {
	for {
		dir := filepath.Dir(path)
		if dir == path {
			return
		}
		parent, ok := mfs.nodes[dir]
		if !ok || !parent.isDir {
			parent = &memoryNode{isDir: true, children: make(map[string]struct{})}
			mfs.nodes[dir] = parent
		}
		name := filepath.Base(path)
		if _, seen := parent.children[name]; seen {
			return
		}
		parent.children[name] = struct{}{}
		path = dir
	}
}

func (mfs *MemoryFileSystem) node(path string) (*memoryNode, bool) {
	n, ok := mfs.nodes[filepath.Clean(path)]
	return n, ok
}

func (mfs *MemoryFileSystem) Exists(path string) bool {
	_, ok := mfs.node(path)
	return ok
}

func (mfs *MemoryFileSystem) IsDirectory(path string) bool {
	n, ok := mfs.node(path)
	return ok && n.isDir
}

func (mfs *MemoryFileSystem) ReadDirectory(path string) ([]string, error) {
	n, ok := mfs.node(path)
	if !ok || !n.isDir {
		return nil, fmt.Errorf("%w: %s is not a directory", mdsource.ErrNotFound, path)
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (mfs *MemoryFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mfs.ReadFileSync(path)
}

func (mfs *MemoryFileSystem) ReadFileSync(path string) ([]byte, error) {
	n, ok := mfs.node(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", mdsource.ErrNotFound, path)
	}
	if n.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	data := make([]byte, len(n.data))
	copy(data, n.data)
	return data, nil
}

func (mfs *MemoryFileSystem) Find(kind FindKind, name, dir string) (string, bool) {
	return findEntry(mfs, kind, name, dir)
}

// Paths returns every file path in the tree, sorted.
func (mfs *MemoryFileSystem) Paths() []string {
	var out []string
	for p, n := range mfs.nodes {
		if !n.isDir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

var _ Tree = (*MemoryFileSystem)(nil)
