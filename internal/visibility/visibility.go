// Package visibility computes the accessibility a generated artifact may
// declare without exposing anything its participants keep hidden.
package visibility

import (
	"propchain/internal/chain"
)

const (
	private   = chain.AccessPrivate
	protAndIn = chain.AccessProtectedAndInternal
	protected = chain.AccessProtected
	internal  = chain.AccessInternal
	protOrIn  = chain.AccessProtectedOrInternal
	public    = chain.AccessPublic
)

// table[host][output] is the combined accessibility. Rows and columns are
// indexed by Accessibility value; index 0 (not applicable) is unused.
//
// Protected and Internal are not comparable: a Protected host with an
// Internal output resolves to Internal, and the reverse to Protected.
var table = [7][7]chain.Accessibility{
	private:   {0, private, private, private, private, private, private},
	protAndIn: {0, private, protAndIn, protAndIn, protAndIn, protAndIn, protAndIn},
	protected: {0, private, protAndIn, protected, internal, protected, protected},
	internal:  {0, private, protAndIn, protected, internal, internal, internal},
	protOrIn:  {0, private, protAndIn, protected, internal, protOrIn, protOrIn},
	public:    {0, private, protAndIn, protected, internal, protOrIn, public},
}

// Resolve returns the accessibility of an artifact exposing a host type
// with the given output type. Not-applicable levels (builtin types) are
// neutral.
func Resolve(host, output chain.Accessibility) chain.Accessibility {
	if !host.Valid() {
		host = public
	}

	if !output.Valid() {
		output = public
	}

	return table[host][output]
}

// ResolveChain folds the host, every link and its declaring type, and the
// output type of a descriptor into one accessibility.
func ResolveChain(d *chain.ChainDescriptor) chain.Accessibility {
	acc := typeAccess(d.HostType())

	for _, link := range d.Chain.Links {
		acc = Resolve(acc, typeAccess(link.DeclaringType))
		acc = Resolve(acc, link.Accessibility)
	}

	return Resolve(acc, typeAccess(d.OutputType()))
}

// Exposable reports whether an artifact with accessibility acc can be an
// extension, i.e. be called from anywhere.
func Exposable(acc chain.Accessibility) bool {
	return acc == public || acc == chain.AccessNotApplicable
}

func typeAccess(t chain.TypeRef) chain.Accessibility {
	if t.IsPublic() {
		return public
	}

	return t.Accessibility
}
