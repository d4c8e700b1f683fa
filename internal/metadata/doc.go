// Package metadata holds the file-name grammar shared by the resolver and the
// adapters.
//
// # Descriptor names
//
// A descriptor file declares a component's name and type:
//
//	MyClass.cls-meta.xml          fullName "MyClass", suffix "cls"
//	A_Folder-meta.xml             folder descriptor, suffix = parent directory
//	MyLabels.labels               content file standing in for its descriptor
//
// ParseDescriptor, ParseFolderDescriptor and ParseContentDescriptor recognise
// the three forms. BaseName and ExtName split plain file names the same way
// the tree's Find does.
//
// # Package manifests
//
// IsProbablyPackageManifest recognises package.xml style files so the resolver
// can skip them instead of failing type inference.
//
// # Identity
//
// ComponentID derives a stable UUID v5 for a {type, fullName} pair.
package metadata
