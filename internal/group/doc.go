// Package group organizes chain descriptors into per-host generation input.
//
// Descriptors for one host are bucketed by output type in a B-tree ordered by
// CompareTypes, structurally identical chains collapse into a single Entry,
// and every bucket gets a MethodPlan:
//   - SingleChain: exactly one chain, compiled to a direct observer
//   - MultiChainTable: several chains, dispatched by canonical expression
//
// Output is deterministic for a given set of inputs regardless of the order
// the descriptors were discovered in.
package group
