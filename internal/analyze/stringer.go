package analyze

import (
	"go/types"
	"strings"

	"propchain/internal/chain"
)

// TypePath builds a readable path string for a partially resolved chain.
// Examples:
//   - "Order" for the host alone
//   - "Order.Customer()" after a getter link
//   - "Order.Customer().Address" after a field link
//   - "Order.Items[]" for a slice value
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Getter appends a getter call to the path.
func (p *TypePath) Getter(name string) *TypePath {
	return p.Field(name + "()")
}

// Link appends a resolved link in its access form.
func (p *TypePath) Link(link chain.ChainLink) *TypePath {
	if link.Access == chain.LinkGetter {
		return p.Getter(link.Name)
	}

	return p.Field(link.Name)
}

// Slice appends a slice indicator "[]" to the path.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}
	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = newParts[len(newParts)-1] + "[]"
	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeString returns t qualified by package name only, e.g. "*store.Order".
func TypeString(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}
