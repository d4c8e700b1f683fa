// Package files groups the storage-facing sub-packages:
//   - filesystem: the Tree interface and its OS, in-memory, archive and cached realizations
//   - ignore: gitignore-style filtering of tree paths
//   - scanner: checksums of the files behind resolved components
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/mdsource/internal/files/filesystem"
//	    "github.com/vvka-141/mdsource/internal/files/ignore"
//	    "github.com/vvka-141/mdsource/internal/files/scanner"
//	)
//
//	tree := filesystem.NewOSFileSystem()
//	filter := ignore.FindAndCreate(tree, "force-app")
//	digests, err := scanner.NewScannerWithTree(checksum.New(), tree).ScanComponents(ctx, comps)
package files
