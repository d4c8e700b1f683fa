// Package registrytest provides a small registry covering every file layout,
// for use in tests of packages that consume a registry.
package registrytest

import (
	_ "embed"

	"github.com/vvka-141/mdsource/internal/registry"
)

//go:embed mock_registry.yaml
var mockYAML []byte

// Type ids declared by the mock registry.
const (
	Kathy                   = "kathy"
	KathyFolder             = "kathyfolder"
	MatchingContentFile     = "matchingcontentfile"
	MixedContentSingleFile  = "mixedcontentsinglefile"
	MixedContentDirectory   = "mixedcontentdirectory"
	Bundle                  = "bundle"
	DecomposedTopLevel      = "decomposedtoplevel"
	DecomposedTopLevelChild = "g"
	ReginaKing              = "reginaking"
	ReginaKingX             = "x"
	ReginaKingY             = "y"
	TinaFey                 = "tinafey"
	DigitalExperienceBundle = "digitalexperiencebundle"
	DigitalExperience       = "digitalexperience"
	BrokenAdapter           = "brokenadapter"
)

// Registry parses the mock registry. It panics on error since the input is
// fixed.
func Registry() *registry.Registry {
	r, err := registry.Parse(mockYAML)
	if err != nil {
		panic(err)
	}
	return r
}

// Type returns a mock type by id, panicking when it does not exist.
func Type(r *registry.Registry, id string) *registry.MetadataType {
	t, ok := r.TypeByID(id)
	if !ok {
		panic("registrytest: unknown type " + id)
	}
	return t
}
