package filesystem

import (
	"context"
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

type listing struct {
	names []string
	err   error
}

// CachedFileSystem memoizes the directory queries of another tree in
// bounded LRU caches. File reads pass through. The wrapped tree must not
// change while the cache is in use; call Purge after it does.
type CachedFileSystem struct {
	inner    Tree
	listings *lru.Cache[string, listing]
	stats    *lru.Cache[string, statResult]
}

type statResult struct {
	exists bool
	isDir  bool
}

// NewCachedFileSystem wraps inner with caches holding up to size entries each.
func NewCachedFileSystem(inner Tree, size int) (*CachedFileSystem, error) {
	listings, err := lru.New[string, listing](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory cache: %w", err)
	}
	stats, err := lru.New[string, statResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create stat cache: %w", err)
	}
	return &CachedFileSystem{inner: inner, listings: listings, stats: stats}, nil
}

func (c *CachedFileSystem) stat(path string) statResult {
	path = filepath.Clean(path)
	if s, ok := c.stats.Get(path); ok {
		return s
	}
	s := statResult{exists: c.inner.Exists(path)}
	if s.exists {
		s.isDir = c.inner.IsDirectory(path)
	}
	c.stats.Add(path, s)
	return s
}

func (c *CachedFileSystem) Exists(path string) bool {
	return c.stat(path).exists
}

func (c *CachedFileSystem) IsDirectory(path string) bool {
	return c.stat(path).isDir
}

func (c *CachedFileSystem) ReadDirectory(path string) ([]string, error) {
	path = filepath.Clean(path)
	l, ok := c.listings.Get(path)
	if !ok {
		names, err := c.inner.ReadDirectory(path)
		l = listing{names: names, err: err}
		c.listings.Add(path, l)
	}
	if l.err != nil {
		return nil, l.err
	}
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out, nil
}

func (c *CachedFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return c.inner.ReadFile(ctx, path)
}

func (c *CachedFileSystem) ReadFileSync(path string) ([]byte, error) {
	return c.inner.ReadFileSync(path)
}

func (c *CachedFileSystem) Find(kind FindKind, name, dir string) (string, bool) {
	return findEntry(c, kind, name, dir)
}

func (c *CachedFileSystem) absPath(path string) (string, bool) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), true
	}
	if lt, ok := c.inner.(localTree); ok {
		return lt.absPath(path)
	}
	return "", false
}

// Purge drops every cached entry.
func (c *CachedFileSystem) Purge() {
	c.listings.Purge()
	c.stats.Purge()
}

// Len returns the number of cached directory listings.
func (c *CachedFileSystem) Len() int {
	return c.listings.Len()
}

var _ Tree = (*CachedFileSystem)(nil)
