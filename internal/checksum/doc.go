// Package checksum provides file content hashing with normalization support.
//
// The package implements a dual checksum strategy:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after removing XML comments and normalizing
//     whitespace (formatting-independent content identity)
//
// # Normalization Strategy
//
// Normalization makes checksums resilient to formatting changes:
//  1. Remove XML comments (<!-- ... -->), leaving CDATA sections untouched
//  2. Collapse all whitespace sequences to single spaces
//  3. Remove whitespace between adjacent tags
//  4. Trim leading/trailing whitespace
//
// A descriptor that was only re-indented or re-commented therefore keeps its
// normalized checksum, while any change to element content or attributes
// changes it.
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
