package filesystem

import (
	"context"
	"path/filepath"

	"github.com/vvka-141/mdsource/internal/metadata"
)

// FindKind selects what Find looks for.
type FindKind int

const (
	// FindContent matches entries that are not descriptors.
	FindContent FindKind = iota
	// FindDescriptor matches "<name>.<suffix>-meta.xml" entries.
	FindDescriptor
)

func (k FindKind) String() string {
	if k == FindDescriptor {
		return "descriptor"
	}
	return "content"
}

// Tree is the storage interface the resolver reads through. Paths use the
// host separator; whether they are relative or absolute is up to the caller,
// but one resolve call must use one form consistently.
type Tree interface {
	// Exists reports whether path names a file or directory. It never fails.
	Exists(path string) bool

	// IsDirectory reports whether path names a directory.
	IsDirectory(path string) bool

	// ReadDirectory returns the entry names of a directory in sorted order.
	// The error wraps mdsource.ErrNotFound when path is missing or is not a
	// directory.
	ReadDirectory(path string) ([]string, error)

	// ReadFile returns a file's bytes.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadFileSync returns a file's bytes without a context. Archive-backed
	// trees may return mdsource.ErrNotImplemented.
	ReadFileSync(path string) ([]byte, error)

	// Find returns the first entry of dir, in ReadDirectory order, whose base
	// name (text before the first dot) equals name and whose descriptor-ness
	// matches kind.
	Find(kind FindKind, name, dir string) (string, bool)
}

// localTree is implemented by trees backed by the local disk, where a
// relative path is relative to the working directory.
type localTree interface {
	absPath(path string) (string, bool)
}

// Abs returns the absolute form of path when t reads the local disk. Other
// trees have nothing above their root and report false.
func Abs(t Tree, path string) (string, bool) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), true
	}
	lt, ok := t.(localTree)
	if !ok {
		return "", false
	}
	return lt.absPath(path)
}

// findEntry implements Find on top of ReadDirectory.
func findEntry(t Tree, kind FindKind, name, dir string) (string, bool) {
	entries, err := t.ReadDirectory(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if metadata.BaseName(entry) != name {
			continue
		}
		if metadata.IsDescriptor(entry) == (kind == FindDescriptor) {
			return filepath.Join(dir, entry), true
		}
	}
	return "", false
}
