package group

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/btree"

	"propchain/internal/chain"
)

var (
	// ErrMixedHosts is returned when descriptors for several hosts reach Group.
	ErrMixedHosts = errors.New("descriptors do not share one host type")
	// ErrMixedOperations is returned when a descriptor's operation differs from the pass.
	ErrMixedOperations = errors.New("descriptor operation does not match the pass")
)

// bucket is one output type's slot in the sorted index.
type bucket struct {
	out     chain.TypeRef
	entries []*Entry
}

func bucketLess(a, b *bucket) bool {
	return CompareTypes(a.out, b.out) < 0
}

// Group builds the InputTypeGroup of one host from descriptors discovered in
// any order. Siblings are flattened into their own output buckets.
func Group(op chain.Operation, descriptors []*chain.ChainDescriptor) (*InputTypeGroup, error) {
	flat := Flatten(descriptors)
	if len(flat) == 0 {
		return nil, errors.New("no descriptors to group")
	}

	host := flat[0].HostType()
	for _, d := range flat {
		if !d.HostType().SameNamedType(host) {
			return nil, fmt.Errorf("%w: %s and %s", ErrMixedHosts, host, d.HostType())
		}

		if d.Op != op {
			return nil, fmt.Errorf("%w: %s in %s pass", ErrMixedOperations, d.Op, op)
		}
	}

	index := btree.NewBTreeG(bucketLess)

	for _, d := range flat {
		probe := &bucket{out: d.OutputType()}

		b, ok := index.Get(probe)
		if !ok {
			b = probe
			index.Set(b)
		}

		b.add(d)
	}

	group := &InputTypeGroup{
		Op:            op,
		Host:          host,
		PkgPath:       host.ID.PkgPath,
		Accessibility: host.Accessibility,
		Enclosing:     host.Enclosing,
	}

	index.Scan(func(b *bucket) bool {
		group.Outputs = append(group.Outputs, b.build())
		return true
	})

	return group, nil
}

// GroupAll groups descriptors by host and returns exactly one InputTypeGroup
// per host, hosts ordered by CompareTypes. Descriptors of other operations
// are ignored.
func GroupAll(op chain.Operation, descriptors []*chain.ChainDescriptor) ([]*InputTypeGroup, error) {
	byHost := btree.NewBTreeG(func(a, b []*chain.ChainDescriptor) bool {
		return CompareTypes(hostKey(a[0]), hostKey(b[0])) < 0
	})

	for _, d := range Flatten(descriptors) {
		if d.Op != op {
			continue
		}

		probe := []*chain.ChainDescriptor{d}
		if existing, ok := byHost.Get(probe); ok {
			byHost.Set(append(existing, d))
			continue
		}

		byHost.Set(probe)
	}

	var groups []*InputTypeGroup

	var err error

	byHost.Scan(func(ds []*chain.ChainDescriptor) bool {
		var g *InputTypeGroup

		g, err = Group(op, ds)
		if err != nil {
			return false
		}

		groups = append(groups, g)

		return true
	})

	if err != nil {
		return nil, err
	}

	return groups, nil
}

// Flatten returns descriptors followed by their siblings, depth first.
// Siblings inherit the parent's operation.
func Flatten(descriptors []*chain.ChainDescriptor) []*chain.ChainDescriptor {
	var out []*chain.ChainDescriptor

	var walk func(d *chain.ChainDescriptor, op chain.Operation)

	walk = func(d *chain.ChainDescriptor, op chain.Operation) {
		if d == nil {
			return
		}

		if d.Op != op {
			cp := *d
			cp.Op = op
			d = &cp
		}

		out = append(out, d)

		for _, sib := range d.Siblings {
			walk(sib, op)
		}
	}

	for _, d := range descriptors {
		if d != nil {
			walk(d, d.Op)
		}
	}

	return out
}

// hostKey strips the reference shape so *A and A share a group.
func hostKey(d *chain.ChainDescriptor) chain.TypeRef {
	h := d.HostType()
	h.Pointer = false

	return h
}

func (b *bucket) add(d *chain.ChainDescriptor) {
	for _, e := range b.entries {
		if e.Chain.SameLinks(&d.Chain) {
			e.Descriptors = append(e.Descriptors, d)
			e.addKey(d.Expr)

			return
		}
	}

	b.entries = append(b.entries, &Entry{
		Chain:       d.Chain,
		Keys:        []string{d.Expr},
		Descriptors: []*chain.ChainDescriptor{d},
	})
}

func (b *bucket) build() *OutputTypeGroup {
	// Discovery order must not leak into the output.
	slices.SortFunc(b.entries, func(x, y *Entry) int {
		if c := compareNatural(x.Keys[0], y.Keys[0]); c != 0 {
			return c
		}

		return strings.Compare(x.Chain.Key(), y.Chain.Key())
	})

	g := &OutputTypeGroup{
		OutputType: b.out,
		Entries:    b.entries,
	}

	g.Plan = PlanFor(g.Entries)

	return g
}

// PlanFor selects the method plan from the number of distinct chains.
func PlanFor(entries []*Entry) MethodPlan {
	if len(entries) == 1 {
		return MethodPlan{Kind: SingleChain, Single: entries[0]}
	}

	var rows []TableRow

	for _, e := range entries {
		for _, key := range e.Keys {
			rows = append(rows, TableRow{Key: key, Entry: e})
		}
	}

	slices.SortFunc(rows, func(x, y TableRow) int {
		return compareNatural(x.Key, y.Key)
	})

	return MethodPlan{Kind: MultiChainTable, Table: rows}
}
