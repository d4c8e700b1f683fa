package filesystem

import (
	"archive/zip"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// ArchiveFileSystem implements Tree over any fs.FS. Directories need no
// entries of their own: zip archives imply them from nested entry paths.
//
// Tree paths are mapped onto the fs.FS namespace by converting separators to
// forward slashes; a leading "./" is dropped and "." names the archive root.
type ArchiveFileSystem struct {
	fsys      fs.FS
	syncReads bool
}

// NewArchiveFileSystem wraps fsys. ReadFileSync is supported.
func NewArchiveFileSystem(fsys fs.FS) *ArchiveFileSystem {
	return &ArchiveFileSystem{fsys: fsys, syncReads: true}
}

// NewZipFileSystem opens a zip archive. ReadFileSync on the result returns
// mdsource.ErrNotImplemented; use ReadFile.
func NewZipFileSystem(r io.ReaderAt, size int64) (*ArchiveFileSystem, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}
	return &ArchiveFileSystem{fsys: zr}, nil
}

// NewEmbedFileSystem wraps an embed.FS, treating root as the tree root.
func NewEmbedFileSystem(efs embed.FS, root string) (*ArchiveFileSystem, error) {
	root = path.Clean(filepath.ToSlash(root))
	if root == "." {
		return NewArchiveFileSystem(efs), nil
	}
	sub, err := fs.Sub(efs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded directory %s: %w", root, err)
	}
	return NewArchiveFileSystem(sub), nil
}

// fsPath converts a tree path into an fs.FS name.
func fsPath(p string) (string, bool) {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "./")
	if p == "" {
		p = "."
	}
	return p, fs.ValidPath(p)
}

func (a *ArchiveFileSystem) stat(p string) (fs.FileInfo, error) {
	name, ok := fsPath(p)
	if !ok {
		return nil, fs.ErrNotExist
	}
	return fs.Stat(a.fsys, name)
}

func (a *ArchiveFileSystem) Exists(p string) bool {
	_, err := a.stat(p)
	return err == nil
}

func (a *ArchiveFileSystem) IsDirectory(p string) bool {
	info, err := a.stat(p)
	return err == nil && info.IsDir()
}

func (a *ArchiveFileSystem) ReadDirectory(p string) ([]string, error) {
	name, ok := fsPath(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", mdsource.ErrNotFound, p)
	}
	// fs.ReadDir returns entries sorted by file name
	entries, err := fs.ReadDir(a.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || !a.IsDirectory(p) {
			return nil, fmt.Errorf("%w: %s is not a directory", mdsource.ErrNotFound, p)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (a *ArchiveFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.read(p)
}

func (a *ArchiveFileSystem) ReadFileSync(p string) ([]byte, error) {
	if !a.syncReads {
		return nil, fmt.Errorf("%w: synchronous read of %s from an archive", mdsource.ErrNotImplemented, p)
	}
	return a.read(p)
}

func (a *ArchiveFileSystem) read(p string) ([]byte, error) {
	name, ok := fsPath(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", mdsource.ErrNotFound, p)
	}
	data, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", mdsource.ErrNotFound, p)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", p, err)
	}
	return data, nil
}

func (a *ArchiveFileSystem) Find(kind FindKind, name, dir string) (string, bool) {
	return findEntry(a, kind, name, dir)
}

var _ Tree = (*ArchiveFileSystem)(nil)
