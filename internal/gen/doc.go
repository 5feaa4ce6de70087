// Package gen renders generation units into Go source files.
//
// Generation approach uses text/template + go/format for readable,
// deterministic Go code.
//
// Each unit becomes one file in its package:
//   - a path variable per distinct chain, built from reactive.NewPath
//   - an init function registering every path under its expressions
//   - one selector per output type: a method on the host for member
//     units, an exported function for extension units
//
// Single-chain selectors return their path directly; multi-chain selectors
// switch on the access expression.
package gen
