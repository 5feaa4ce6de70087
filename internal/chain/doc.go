// Package chain provides the canonical representation of property access
// chains and the metadata the planner needs about them.
//
// A chain is an ordered list of property accesses rooted at a host type,
// for example A → B → C → Test. Chains reach the compiler as
// ChainDescriptors produced by a front end (see internal/analyze); this
// package validates their shape and answers visibility queries.
//
// Key types:
//   - TypeID / TypeRef: identity and shape of a participating type
//   - ChainLink: one property access step
//   - Chain: host type plus its links
//   - ChainDescriptor: a chain plus call-site provenance
package chain
