package group

import (
	"slices"

	"propchain/internal/chain"
)

// PlanKind selects the shape of the generated method for one output type.
type PlanKind int

const (
	// SingleChain - exactly one chain, compiled to a direct observer.
	SingleChain PlanKind = iota
	// MultiChainTable - several chains behind one dispatch table.
	MultiChainTable
)

// String returns a human-readable plan kind.
func (k PlanKind) String() string {
	switch k {
	case SingleChain:
		return "single"
	case MultiChainTable:
		return "table"
	default:
		return chain.UnknownStr
	}
}

// Entry is one logical chain: every call site that produced a structurally
// identical chain shares it.
type Entry struct {
	// Chain is the shared link sequence.
	Chain chain.Chain
	// Keys are the canonical expressions that select this chain, sorted.
	Keys []string
	// Descriptors are the call sites that produced the chain.
	Descriptors []*chain.ChainDescriptor
}

// RequiresNonPublicAccess reports whether any call site of the entry needs
// non-public access.
func (e *Entry) RequiresNonPublicAccess() bool {
	return slices.ContainsFunc(e.Descriptors, (*chain.ChainDescriptor).RequiresNonPublicAccess)
}

func (e *Entry) addKey(key string) {
	i, found := slices.BinarySearch(e.Keys, key)
	if !found {
		e.Keys = slices.Insert(e.Keys, i, key)
	}
}

// TableRow maps one dispatch key to its chain.
type TableRow struct {
	Key   string
	Entry *Entry
}

// MethodPlan is a tagged variant: Single is set for SingleChain plans,
// Table for MultiChainTable plans.
type MethodPlan struct {
	Kind   PlanKind
	Single *Entry
	Table  []TableRow
}

// Entries returns the distinct entries of the plan in order.
func (p MethodPlan) Entries() []*Entry {
	if p.Kind == SingleChain {
		if p.Single == nil {
			return nil
		}

		return []*Entry{p.Single}
	}

	var out []*Entry

	for _, row := range p.Table {
		if !slices.Contains(out, row.Entry) {
			out = append(out, row.Entry)
		}
	}

	return out
}

// OutputTypeGroup holds every chain of one host that produces one output type.
type OutputTypeGroup struct {
	OutputType chain.TypeRef
	Entries    []*Entry
	Plan       MethodPlan
}

// RequiresNonPublicAccess reports whether any entry needs non-public access.
// The whole group follows the answer; a group is never split across units.
func (g *OutputTypeGroup) RequiresNonPublicAccess() bool {
	return slices.ContainsFunc(g.Entries, (*Entry).RequiresNonPublicAccess)
}

// InputTypeGroup holds all output groups of one host type for one operation.
type InputTypeGroup struct {
	Op            chain.Operation
	Host          chain.TypeRef
	PkgPath       string
	Accessibility chain.Accessibility
	Enclosing     []string
	Outputs       []*OutputTypeGroup
}

// ChainCount returns the number of distinct chains in the group.
func (g *InputTypeGroup) ChainCount() int {
	n := 0
	for _, out := range g.Outputs {
		n += len(out.Entries)
	}

	return n
}
