// Package scanner computes checksums of resolved components.
//
// The scanner is responsible for:
//   - Listing the descriptor and content files of each component
//   - Computing raw and normalized checksums per file
//   - Combining the file checksums into one component checksum
//
// The scanner reads through filesystem.Tree, so digests can be computed from
// a local project, an archive, or an in-memory tree in tests.
package scanner
