package metadata

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceComponentIdentity is the UUID namespace for deterministic component
// identities, derived from "mdsource/component-identity/v1" under the URL
// namespace.
var NamespaceComponentIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mdsource/component-identity/v1"))

// ComponentID returns a UUID v5 for a {type, fullName} pair.
//
// The type name is compared case-insensitively (registry lookups are), the
// full name is not:
//
//	ComponentID("ApexClass", "Foo") == ComponentID("apexclass", "Foo")
//	ComponentID("ApexClass", "Foo") != ComponentID("ApexClass", "foo")
func ComponentID(typeName, fullName string) uuid.UUID {
	return uuid.NewSHA1(NamespaceComponentIdentity, []byte(normalizeTypeName(typeName)+"#"+fullName))
}

func normalizeTypeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}
