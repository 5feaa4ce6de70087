package chain

// Accessibility is the declared visibility of a type or member.
//
// The six levels mirror a nominal module system: Private is visible only to
// the declaring type, Internal to the declaring module, Protected to derived
// types, ProtectedAndInternal to derived types in the same module,
// ProtectedOrInternal to either, Public to everyone.
type Accessibility int

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessProtectedAndInternal
	AccessProtected
	AccessInternal
	AccessProtectedOrInternal
	AccessPublic
)

// String returns the keyword form of the accessibility.
func (a Accessibility) String() string {
	switch a {
	case AccessNotApplicable:
		return "not-applicable"
	case AccessPrivate:
		return "private"
	case AccessProtectedAndInternal:
		return "private protected"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessProtectedOrInternal:
		return "protected internal"
	case AccessPublic:
		return "public"
	default:
		return UnknownStr
	}
}

// Valid reports whether a is one of the six concrete levels.
func (a Accessibility) Valid() bool {
	return a >= AccessPrivate && a <= AccessPublic
}
