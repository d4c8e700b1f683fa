package registry

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed registry.yaml
var defaultRegistryYAML []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the embedded registry. It is parsed once and shared.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Parse(defaultRegistryYAML)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded registry: %w", defaultErr)
		}
	})
	return defaultRegistry, defaultErr
}

// MustDefault is Default for callers that treat a broken embedded registry
// as a programming error.
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}
