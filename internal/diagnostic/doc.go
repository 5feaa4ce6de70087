// Package diagnostic provides structured errors, warnings and notes
// produced while turning call sites into generation units.
//
// Key capabilities:
//   - Isolated failures: a malformed or unreachable call site is reported
//     and dropped while every other call site is still processed
//   - Stable codes (see the Code* constants) for tests and tooling
//   - Host and call-site attribution for every message
package diagnostic
