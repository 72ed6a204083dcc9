// Package domain defines the core business entities for pkgdocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PackageDocument: The structured, cached description of a package
//   - KeyVariable: A named variable or parameter worth knowing about
//   - DocsError: The failure side of resolving a PackageDocument
//   - Settings: Provider, storage and fetch configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
