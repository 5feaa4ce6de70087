package group

import (
	"strings"

	"github.com/maruel/natural"

	"propchain/internal/chain"
)

// CompareTypes is a total order over type references, stable across runs:
// package path, then display name in natural order ("T2" before "T10"),
// then reference shape.
func CompareTypes(a, b chain.TypeRef) int {
	if c := strings.Compare(a.ID.PkgPath, b.ID.PkgPath); c != 0 {
		return c
	}

	if c := compareNatural(a.DisplayName(), b.DisplayName()); c != 0 {
		return c
	}

	if c := compareBool(a.Slice, b.Slice); c != 0 {
		return c
	}

	if c := compareBool(a.Pointer, b.Pointer); c != 0 {
		return c
	}

	return compareBool(a.Interface, b.Interface)
}

func compareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		// Naturally equal but different ("T01" vs "T1").
		return strings.Compare(a, b)
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
