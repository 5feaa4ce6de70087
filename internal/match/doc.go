// Package match finds the property name a mistyped access expression most
// likely meant.
//
// Names are compared after normalization (case folding, separator removal,
// getter prefix stripping) by Levenshtein similarity.
package match
