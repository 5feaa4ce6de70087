package group

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propchain/internal/chain"
	ct "propchain/internal/chain/chaintest"
)

func descriptors() []*chain.ChainDescriptor {
	a := ct.Ptr(ct.Type("A"))

	return []*chain.ChainDescriptor{
		ct.ABCTest(chain.OpWhenChanged),
		ct.Descriptor(chain.OpWhenChanged, a, ct.S("B", ct.Ptr(ct.Type("B"))), ct.S("Name", ct.String)),
		ct.Descriptor(chain.OpWhenChanged, a, ct.S("Count", ct.Int)),
		ct.Descriptor(chain.OpWhenChanged, a, ct.S("B", ct.Ptr(ct.Type("B")))),
	}
}

func TestGroup_BucketsByOutputType(t *testing.T) {
	g, err := Group(chain.OpWhenChanged, descriptors())
	require.NoError(t, err)

	assert.Equal(t, "A", g.Host.ID.Name)
	assert.Equal(t, ct.Pkg, g.PkgPath)
	require.Len(t, g.Outputs, 3)

	// Builtins (empty package path) sort before named types.
	assert.Equal(t, "int", g.Outputs[0].OutputType.ID.Name)
	assert.Equal(t, "string", g.Outputs[1].OutputType.ID.Name)
	assert.Equal(t, "B", g.Outputs[2].OutputType.ID.Name)

	assert.Equal(t, SingleChain, g.Outputs[0].Plan.Kind)
	assert.Equal(t, MultiChainTable, g.Outputs[1].Plan.Kind)
	assert.Equal(t, SingleChain, g.Outputs[2].Plan.Kind)
	assert.Equal(t, 4, g.ChainCount())
}

func TestGroup_DeduplicatesIdenticalChains(t *testing.T) {
	ds := []*chain.ChainDescriptor{
		ct.ABCTest(chain.OpWhenChanged),
		ct.ABCTest(chain.OpWhenChanged),
		ct.ABCTest(chain.OpWhenChanged),
	}
	// A different textual form of the same chain.
	ds[2].Expr = "B().C.Test"

	g, err := Group(chain.OpWhenChanged, ds)
	require.NoError(t, err)
	require.Len(t, g.Outputs, 1)

	out := g.Outputs[0]
	require.Len(t, out.Entries, 1)
	assert.Len(t, out.Entries[0].Descriptors, 3)
	assert.Equal(t, []string{"B().C.Test", "B.C.Test"}, out.Entries[0].Keys)
	assert.Equal(t, SingleChain, out.Plan.Kind)
	assert.Same(t, out.Entries[0], out.Plan.Single)
}

func TestGroup_MultiChainTableKeys(t *testing.T) {
	a := ct.Ptr(ct.Type("A"))
	ds := []*chain.ChainDescriptor{
		ct.Descriptor(chain.OpWhenChanged, a, ct.S("Name", ct.String)),
		ct.ABCTest(chain.OpWhenChanged),
		ct.ABCTest(chain.OpWhenChanged),
	}

	g, err := Group(chain.OpWhenChanged, ds)
	require.NoError(t, err)
	require.Len(t, g.Outputs, 1)

	p := g.Outputs[0].Plan
	require.Equal(t, MultiChainTable, p.Kind)
	require.Len(t, p.Table, 2)
	assert.Equal(t, "B.C.Test", p.Table[0].Key)
	assert.Equal(t, "Name", p.Table[1].Key)
	assert.Len(t, p.Entries(), 2)
}

func TestGroup_DeterministicAcrossInputOrder(t *testing.T) {
	first, err := Group(chain.OpWhenChanged, descriptors())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))

	for range 10 {
		ds := descriptors()
		rng.Shuffle(len(ds), func(i, j int) { ds[i], ds[j] = ds[j], ds[i] })

		again, err := Group(chain.OpWhenChanged, ds)
		require.NoError(t, err)
		require.Len(t, again.Outputs, len(first.Outputs))

		for i := range first.Outputs {
			assert.Equal(t, first.Outputs[i].OutputType, again.Outputs[i].OutputType)
			assert.Equal(t, first.Outputs[i].Plan.Kind, again.Outputs[i].Plan.Kind)

			for j, e := range first.Outputs[i].Entries {
				assert.Equal(t, e.Keys, again.Outputs[i].Entries[j].Keys)
			}
		}
	}
}

func TestGroup_Siblings(t *testing.T) {
	parent := ct.ABCTest(chain.OpWhenChanged)
	parent.Siblings = []*chain.ChainDescriptor{
		ct.Descriptor(chain.OpWhenChanged, ct.Ptr(ct.Type("A")), ct.S("Count", ct.Int)),
	}

	g, err := Group(chain.OpWhenChanged, []*chain.ChainDescriptor{parent})
	require.NoError(t, err)
	assert.Len(t, g.Outputs, 2)
}

func TestGroup_Errors(t *testing.T) {
	_, err := Group(chain.OpWhenChanged, nil)
	require.Error(t, err)

	other := ct.Descriptor(chain.OpWhenChanged, ct.Type("Z"), ct.S("Name", ct.String))
	_, err = Group(chain.OpWhenChanged, []*chain.ChainDescriptor{ct.ABCTest(chain.OpWhenChanged), other})
	require.ErrorIs(t, err, ErrMixedHosts)

	_, err = Group(chain.OpBind, []*chain.ChainDescriptor{ct.ABCTest(chain.OpWhenChanged)})
	require.ErrorIs(t, err, ErrMixedOperations)
}

func TestGroupAll_OnePerHost(t *testing.T) {
	z := ct.Type("Z")
	ds := append(descriptors(),
		ct.Descriptor(chain.OpWhenChanged, z, ct.S("Name", ct.String)),
		ct.Descriptor(chain.OpWhenChanged, ct.Ptr(z), ct.S("Other", ct.String)),
		ct.Descriptor(chain.OpBind, z, ct.S("Ignored", ct.String)),
	)

	groups, err := GroupAll(chain.OpWhenChanged, ds)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Host.ID.Name)
	assert.Equal(t, "Z", groups[1].Host.ID.Name)
	assert.Equal(t, 2, groups[1].ChainCount())
}

func TestCompareTypes(t *testing.T) {
	t2 := ct.Type("T2")
	t10 := ct.Type("T10")

	assert.Negative(t, CompareTypes(t2, t10))
	assert.Positive(t, CompareTypes(t10, t2))
	assert.Zero(t, CompareTypes(t2, t2))
	assert.Negative(t, CompareTypes(t2, ct.Ptr(t2)))
	assert.Negative(t, CompareTypes(ct.String, t2))

	a := ct.Type("T01")
	b := ct.Type("T1")
	assert.NotZero(t, CompareTypes(a, b))
	assert.Equal(t, -CompareTypes(a, b), CompareTypes(b, a))
}

func TestEntry_RequiresNonPublicAccess(t *testing.T) {
	g, err := Group(chain.OpWhenChanged, descriptors())
	require.NoError(t, err)
	assert.False(t, g.Outputs[0].RequiresNonPublicAccess())

	hidden := ct.Descriptor(chain.OpWhenChanged, ct.Ptr(ct.Type("A")),
		ct.Step{Name: "count", Value: ct.Int, Access: chain.AccessPrivate})

	g, err = Group(chain.OpWhenChanged, append(descriptors(), hidden))
	require.NoError(t, err)
	assert.True(t, g.Outputs[0].RequiresNonPublicAccess())
	assert.False(t, g.Outputs[1].RequiresNonPublicAccess())
}
