package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// OSFileSystem implements Tree over the real filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a tree backed by the OS filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (t *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (t *OSFileSystem) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (t *OSFileSystem) ReadDirectory(path string) ([]string, error) {
	// os.ReadDir returns entries sorted by file name
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("%w: %s is not a directory", mdsource.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (t *OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.ReadFileSync(path)
}

func (t *OSFileSystem) ReadFileSync(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", mdsource.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

func (t *OSFileSystem) absPath(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	return abs, err == nil
}

func (t *OSFileSystem) Find(kind FindKind, name, dir string) (string, bool) {
	return findEntry(t, kind, name, dir)
}

var _ Tree = (*OSFileSystem)(nil)
