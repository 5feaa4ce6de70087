package chain

import (
	"strings"
)

// UnknownStr is returned by String methods for out-of-range values.
const UnknownStr = "unknown"

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "propchain/internal/analyze/testdata/fixture"
	Name    string // e.g., "Order"; builtin types have an empty PkgPath
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeRef describes a type taking part in a chain: the named type itself
// plus the shape it is referenced with.
type TypeRef struct {
	ID            TypeID
	Pointer       bool          // *T, or []*T when Slice is also set
	Slice         bool          // []T
	Interface     bool          // T is an interface type
	Accessibility Accessibility // Declared accessibility of the named type
	Local         bool          // Declared in a package the generator writes into
	Enclosing     []string      // Enclosing type names, outermost first
}

// DisplayName returns the type name qualified by its enclosing types.
func (t TypeRef) DisplayName() string {
	if len(t.Enclosing) == 0 {
		return t.ID.Name
	}

	return strings.Join(t.Enclosing, ".") + "." + t.ID.Name
}

// Nillable reports whether a value of this type can be nil.
func (t TypeRef) Nillable() bool {
	return t.Pointer || t.Slice || t.Interface
}

// SameNamedType reports whether both refs point at the same named type,
// ignoring how it is referenced (pointer or not).
func (t TypeRef) SameNamedType(other TypeRef) bool {
	return t.ID == other.ID && t.Slice == other.Slice
}

// Equal reports whether both refs describe the same type with the same shape.
func (t TypeRef) Equal(other TypeRef) bool {
	return t.ID == other.ID &&
		t.Pointer == other.Pointer &&
		t.Slice == other.Slice &&
		t.Interface == other.Interface
}

// String returns the full type string (e.g., "*fixture.B", "[]string").
func (t TypeRef) String() string {
	var sb strings.Builder

	if t.Slice {
		sb.WriteString("[]")
	}

	if t.Pointer {
		sb.WriteString("*")
	}

	if t.ID.PkgPath != "" {
		sb.WriteString(t.ID.PkgPath)
		sb.WriteString(".")
	}

	sb.WriteString(t.DisplayName())

	return sb.String()
}

// IsPublic reports whether the type is visible to any consumer.
func (t TypeRef) IsPublic() bool {
	// Builtin types carry no declared accessibility.
	if t.ID.PkgPath == "" && t.Accessibility == AccessNotApplicable {
		return true
	}

	return t.Accessibility == AccessPublic
}
