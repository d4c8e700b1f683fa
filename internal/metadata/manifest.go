package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// FileReader is the subset of a tree needed to sniff file content.
type FileReader interface {
	ReadFileSync(path string) ([]byte, error)
}

// IsProbablyPackageManifest reports whether path looks like a package manifest
// (package.xml, destructiveChanges.xml and similar). Such files sit next to
// source but are not components.
//
// The root element is checked when the tree can read synchronously; trees that
// cannot (archive-backed storage) fall back to the file name.
func IsProbablyPackageManifest(r FileReader, path string) bool {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".xml") || strings.HasSuffix(base, MetaXMLSuffix) {
		return false
	}

	data, err := r.ReadFileSync(path)
	if err != nil {
		return looksLikeManifestName(base)
	}
	root, err := rootElement(data)
	if err != nil {
		return false
	}
	return root == "Package"
}

func looksLikeManifestName(base string) bool {
	name := strings.ToLower(strings.TrimSuffix(base, ".xml"))
	return name == "package" || strings.HasPrefix(name, "destructivechanges")
}

func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", errors.New("no root element")
			}
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}
