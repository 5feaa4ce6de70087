// Package analyze is the Go front end of the chain compiler.
//
// It loads packages with golang.org/x/tools/go/packages, finds calls to
// the marker functions of package reactive and resolves their constant
// access expressions against the host type with go/types, producing one
// chain.ChainDescriptor per requested chain.
//
// Key types:
//   - Analyzer: loads packages and extracts descriptors
//   - Result: descriptors plus diagnostics for rejected call sites
//   - TypePath: readable partial paths used in diagnostics
package analyze
