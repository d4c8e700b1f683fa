package mdsource

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Resolution completed successfully
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration or registry
	ExitNotFound      = 11 // Root path does not exist
	ExitTypeInference = 12 // A file could not be mapped to a type
	ExitResolveFailed = 13 // A component was malformed or denied
)

const (
	// MetaXMLSuffix ends every descriptor file name.
	MetaXMLSuffix = "-meta.xml"

	// DefaultProjectMarker is the file that marks a project root.
	DefaultProjectMarker = "sfdx-project.json"

	// DefaultIgnoreFile is the ignore file expected beside the project marker.
	DefaultIgnoreFile = ".forceignore"

	// DefaultTreeCacheSize bounds the directory cache used for disk-backed trees.
	DefaultTreeCacheSize = 4096
)
