// Package chaintest provides builders for chain descriptors used across
// compiler tests.
package chaintest

import (
	"strings"

	"propchain/internal/chain"
)

// Pkg is the package path used by the builders.
const Pkg = "example/model"

// Builtin types.
var (
	String = chain.TypeRef{ID: chain.TypeID{Name: "string"}, Accessibility: chain.AccessPublic}
	Int    = chain.TypeRef{ID: chain.TypeID{Name: "int"}, Accessibility: chain.AccessPublic}
	Bool   = chain.TypeRef{ID: chain.TypeID{Name: "bool"}, Accessibility: chain.AccessPublic}
)

// Type returns a local, public named type in Pkg.
func Type(name string) chain.TypeRef {
	return chain.TypeRef{
		ID:            chain.TypeID{PkgPath: Pkg, Name: name},
		Accessibility: chain.AccessPublic,
		Local:         true,
	}
}

// Ptr returns t referenced through a pointer.
func Ptr(t chain.TypeRef) chain.TypeRef {
	t.Pointer = true
	return t
}

// WithAccess returns t with a different declared accessibility.
func WithAccess(t chain.TypeRef, acc chain.Accessibility) chain.TypeRef {
	t.Accessibility = acc
	return t
}

// Step describes one link for Build.
type Step struct {
	Name   string
	Value  chain.TypeRef
	Access chain.Accessibility // defaults to public
}

// S is shorthand for a public Step.
func S(name string, value chain.TypeRef) Step {
	return Step{Name: name, Value: value}
}

// Build assembles a well-formed chain rooted at host.
func Build(host chain.TypeRef, steps ...Step) chain.Chain {
	c := chain.Chain{Host: host}
	owner := host

	for i, step := range steps {
		acc := step.Access
		if acc == chain.AccessNotApplicable {
			acc = chain.AccessPublic
		}

		c.Links = append(c.Links, chain.ChainLink{
			DeclaringType: owner,
			Name:          step.Name,
			ValueType:     step.Value,
			Accessibility: acc,
			Terminal:      i == len(steps)-1,
		})
		owner = step.Value
	}

	return c
}

// Descriptor builds a descriptor whose expression is the joined step names.
func Descriptor(op chain.Operation, host chain.TypeRef, steps ...Step) *chain.ChainDescriptor {
	c := Build(host, steps...)

	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}

	return &chain.ChainDescriptor{
		Op:    op,
		Chain: c,
		Expr:  strings.Join(names, "."),
		Site:  chain.CallSite{PkgPath: host.ID.PkgPath},
	}
}

// ABCTest returns the A → B → C → Test descriptor used throughout the tests.
func ABCTest(op chain.Operation) *chain.ChainDescriptor {
	return Descriptor(op, Ptr(Type("A")),
		S("B", Ptr(Type("B"))),
		S("C", Ptr(Type("C"))),
		S("Test", String),
	)
}
