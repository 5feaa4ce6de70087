package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyChain is reported for a chain without links.
var ErrEmptyChain = errors.New("chain has no links")

// ChainLink is one property access step.
type ChainLink struct {
	DeclaringType TypeRef       // Type owning the property
	Name          string        // Property name
	ValueType     TypeRef       // Type of the property value
	Accessibility Accessibility // Declared accessibility of the property
	Terminal      bool          // True for the leaf link
	Access        LinkAccess    // Field or getter
	Setter        string        // Setter method name, empty when written as a field
}

// Chain is an ordered, non-empty list of links rooted at Host.
type Chain struct {
	Host  TypeRef
	Links []ChainLink
}

// MalformedChainError reports a chain whose links do not connect. It is an
// internal invariant violation of the front end, not a user error.
type MalformedChainError struct {
	Index  int // Offending link index, -1 for chain-level problems
	Reason string
	Err    error
}

func (e *MalformedChainError) Error() string {
	if e.Index < 0 {
		return "malformed chain: " + e.Reason
	}

	return fmt.Sprintf("malformed chain at link %d: %s", e.Index, e.Reason)
}

func (e *MalformedChainError) Unwrap() error {
	return e.Err
}

// Validate checks the chain is well formed: non-empty, rooted at the host,
// every link's value type declaring the next link, and only the last link
// marked terminal.
func (c *Chain) Validate() error {
	if len(c.Links) == 0 {
		return &MalformedChainError{Index: -1, Reason: "no links", Err: ErrEmptyChain}
	}

	if !c.Links[0].DeclaringType.SameNamedType(c.Host) {
		return &MalformedChainError{
			Index:  0,
			Reason: fmt.Sprintf("declared on %s, host is %s", c.Links[0].DeclaringType, c.Host),
		}
	}

	last := len(c.Links) - 1
	for i, link := range c.Links {
		if link.Name == "" {
			return &MalformedChainError{Index: i, Reason: "empty property name"}
		}

		if link.Terminal != (i == last) {
			if link.Terminal {
				return &MalformedChainError{Index: i, Reason: "terminal link has further links"}
			}

			return &MalformedChainError{Index: i, Reason: "leaf link is not terminal"}
		}

		if i == last {
			continue
		}

		next := c.Links[i+1].DeclaringType
		if link.ValueType.Slice || !link.ValueType.SameNamedType(next) {
			return &MalformedChainError{
				Index:  i,
				Reason: fmt.Sprintf("value type %s does not declare %s.%s", link.ValueType, next, c.Links[i+1].Name),
			}
		}
	}

	return nil
}

// HostType returns the root type of the chain.
func (c *Chain) HostType() TypeRef {
	return c.Host
}

// OutputType returns the value type of the leaf link.
func (c *Chain) OutputType() TypeRef {
	if len(c.Links) == 0 {
		return TypeRef{}
	}

	return c.Links[len(c.Links)-1].ValueType
}

// Path returns the link names joined with dots, e.g. "B.C.Test".
func (c *Chain) Path() string {
	names := make([]string, len(c.Links))
	for i, link := range c.Links {
		names[i] = link.Name
	}

	return strings.Join(names, ".")
}

// Key returns a structural key: two chains with equal keys have identical
// link sequences.
func (c *Chain) Key() string {
	var sb strings.Builder

	sb.WriteString(c.Host.ID.String())

	for _, link := range c.Links {
		sb.WriteString("|")
		sb.WriteString(link.DeclaringType.ID.String())
		sb.WriteString(".")
		sb.WriteString(link.Name)
		sb.WriteString(":")
		sb.WriteString(link.ValueType.String())
	}

	return sb.String()
}

// SameLinks reports whether both chains have structurally identical links.
func (c *Chain) SameLinks(other *Chain) bool {
	if len(c.Links) != len(other.Links) || !c.Host.SameNamedType(other.Host) {
		return false
	}

	for i := range c.Links {
		a, b := c.Links[i], other.Links[i]
		if a.Name != b.Name ||
			!a.DeclaringType.SameNamedType(b.DeclaringType) ||
			!a.ValueType.Equal(b.ValueType) {
			return false
		}
	}

	return true
}

// Conversion describes an optional conversion function of a bound chain.
type Conversion struct {
	Kind ConversionKind
	Func string // Source form of the function expression
}

// CallSite locates the expression a descriptor was produced from.
type CallSite struct {
	PkgPath string
	File    string
	Line    int
}

// String returns "file:line".
func (s CallSite) String() string {
	if s.File == "" {
		return s.PkgPath
	}

	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// ChainDescriptor is a chain plus the provenance of the call site that
// requested it.
type ChainDescriptor struct {
	// Op is the operation requested at the call site.
	Op Operation
	// Chain is the property access chain.
	Chain Chain
	// Expr is the canonical source form of the access expression; it is the
	// dispatch key of multi-chain tables.
	Expr string
	// Receiver tells whether the chain is rooted at the enclosing receiver.
	Receiver ReceiverKind
	// Requested is the generation surface the call site asked for.
	Requested RequestedVisibility
	// Conversion is the forward conversion of a bound chain (if any).
	Conversion *Conversion
	// BackConversion is the inverse conversion of a two-way bound chain (if any).
	BackConversion *Conversion
	// Siblings are further chains requested by the same call site.
	Siblings []*ChainDescriptor
	// Site locates the call site.
	Site CallSite
}

// HostType returns the chain's host type.
func (d *ChainDescriptor) HostType() TypeRef {
	return d.Chain.HostType()
}

// OutputType returns the chain's output type.
func (d *ChainDescriptor) OutputType() TypeRef {
	return d.Chain.OutputType()
}

// Validate validates the descriptor's chain and its siblings.
func (d *ChainDescriptor) Validate() error {
	if err := d.Chain.Validate(); err != nil {
		return err
	}

	for _, sib := range d.Siblings {
		if err := sib.Validate(); err != nil {
			return fmt.Errorf("sibling %q: %w", sib.Expr, err)
		}
	}

	return nil
}

// RequiresNonPublicAccess reports whether generated code for this chain
// must touch something that is not publicly visible: the host, any link,
// any link's declaring type, or the output type.
func (d *ChainDescriptor) RequiresNonPublicAccess() bool {
	if !d.Chain.Host.IsPublic() {
		return true
	}

	for _, link := range d.Chain.Links {
		if link.Accessibility != AccessPublic || !link.DeclaringType.IsPublic() {
			return true
		}
	}

	return !d.OutputType().IsPublic()
}
