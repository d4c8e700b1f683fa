package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator is an interface for computing file checksums.
// This abstraction allows for different checksum strategies and algorithms.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	// Normalization makes checksums resilient to formatting changes.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// It follows the mdsource normalization strategy:
//  1. Remove XML comments (<!-- -->) while preserving CDATA sections
//  2. Collapse whitespace to single spaces
//  3. Drop whitespace between a closing ">" and the next "<"
//
// Case is preserved: descriptors are case-sensitive XML.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// normalize applies the normalization rules to content.
func (c SHA256) normalize(content string) string {
	cleaned := c.removeComments(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	pendingSpace := false
	var last rune
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace && !(last == '>' && r == '<') {
			b.WriteRune(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
		last = r
	}

	return b.String()
}

type commentState int

const (
	csNormal commentState = iota
	csComment
	csCData
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
)

// removeComments removes XML comments. CDATA sections are copied verbatim,
// so comment markers inside them survive.
func (c SHA256) removeComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := csNormal
	i := 0

	for i < len(content) {
		switch state {
		case csNormal:
			if hasPrefixAt(content, i, commentOpen) {
				state = csComment
				b.WriteByte(' ')
				i += len(commentOpen)
			} else if hasPrefixAt(content, i, cdataOpen) {
				state = csCData
				b.WriteString(cdataOpen)
				i += len(cdataOpen)
			} else {
				b.WriteByte(content[i])
				i++
			}

		case csComment:
			if hasPrefixAt(content, i, commentClose) {
				state = csNormal
				i += len(commentClose)
			} else {
				i++
			}

		case csCData:
			if hasPrefixAt(content, i, cdataClose) {
				state = csNormal
				b.WriteString(cdataClose)
				i += len(cdataClose)
			} else {
				b.WriteByte(content[i])
				i++
			}
		}
	}

	return b.String()
}

// hasPrefixAt checks if the string at position i starts with prefix.
func hasPrefixAt(s string, i int, prefix string) bool {
	if i+len(prefix) > len(s) {
		return false
	}
	return s[i:i+len(prefix)] == prefix
}
