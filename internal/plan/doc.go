// Package plan turns chain descriptors into generation units consumed by
// code generation.
//
// Planning pipeline:
//  1. Validate each descriptor and canonicalize its expression
//  2. Group descriptors by operation, host and output type
//  3. Resolve the accessibility of every output group
//  4. Partition each host into at most one member unit (non-public
//     groups) and one extension unit (fully public groups)
//  5. Name artifacts, methods and path variables deterministically
//  6. Emit diagnostics for dropped call sites and demoted requests
package plan
