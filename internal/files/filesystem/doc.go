// Package filesystem provides the Tree storage abstraction the resolver reads
// through.
//
// Implementations:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: a virtual tree built from explicit entries or bare
//     paths, used for tests and for files that no longer exist on disk
//   - ArchiveFileSystem: any fs.FS, including zip archives and embed.FS
//   - CachedFileSystem: an LRU-memoizing decorator for any Tree
//
// Every implementation lists directories in sorted order, which makes Find
// deterministic: when a directory holds both "a.cls" and "a.cls-meta.xml",
// Find(FindContent, "a", dir) returns the former and
// Find(FindDescriptor, "a", dir) the latter.
package filesystem
