// Package resolver maps a path in a source tree to the components stored
// there.
//
// Each file's type is inferred from the shape of its path against the
// registry, then the type's adapter finds the rest of the component's files.
// Directories that hold exactly one component are resolved as a unit;
// everything else is walked depth first.
//
// Example:
//
//	r := resolver.New(registry.MustDefault(), filesystem.NewOSFileSystem())
//	components, err := r.ResolveFromPath("force-app")
//	if err != nil {
//	    return err
//	}
//	for _, c := range components {
//	    fmt.Println(c.Member().Type, c.FullName())
//	}
package resolver
