package chain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propchain/internal/chain"
	ct "propchain/internal/chain/chaintest"
)

func TestChain_ValidateWellFormed(t *testing.T) {
	d := ct.ABCTest(chain.OpWhenChanged)

	require.NoError(t, d.Validate())
	assert.Equal(t, "A", d.HostType().ID.Name)
	assert.Equal(t, ct.String, d.OutputType())
	assert.Equal(t, "B.C.Test", d.Chain.Path())
}

func TestChain_ValidateEmpty(t *testing.T) {
	c := chain.Chain{Host: ct.Type("A")}

	err := c.Validate()
	require.Error(t, err)

	var malformed *chain.MalformedChainError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, -1, malformed.Index)
	assert.ErrorIs(t, err, chain.ErrEmptyChain)
}

func TestChain_ValidateLinkMismatch(t *testing.T) {
	c := ct.Build(ct.Ptr(ct.Type("A")), ct.S("B", ct.Ptr(ct.Type("B"))), ct.S("Test", ct.String))
	// C is not the type B's value declares.
	c.Links[1].DeclaringType = ct.Type("C")

	err := c.Validate()

	var malformed *chain.MalformedChainError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 0, malformed.Index)
	assert.Contains(t, err.Error(), "does not declare")
}

func TestChain_ValidateHostMismatch(t *testing.T) {
	c := ct.Build(ct.Ptr(ct.Type("A")), ct.S("Test", ct.String))
	c.Host = ct.Type("Other")

	var malformed *chain.MalformedChainError
	require.True(t, errors.As(c.Validate(), &malformed))
	assert.Equal(t, 0, malformed.Index)
}

func TestChain_ValidateTerminalPlacement(t *testing.T) {
	c := ct.Build(ct.Ptr(ct.Type("A")), ct.S("B", ct.Ptr(ct.Type("B"))), ct.S("Test", ct.String))
	c.Links[0].Terminal = true

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal link has further links")

	c = ct.Build(ct.Ptr(ct.Type("A")), ct.S("B", ct.Ptr(ct.Type("B"))), ct.S("Test", ct.String))
	c.Links[1].Terminal = false
	assert.ErrorContains(t, c.Validate(), "leaf link is not terminal")
}

func TestChain_ValidateSliceIntermediate(t *testing.T) {
	items := ct.Type("Item")
	items.Slice = true

	c := ct.Build(ct.Ptr(ct.Type("A")), ct.S("Items", items), ct.S("Name", ct.String))

	assert.Error(t, c.Validate())
}

func TestDescriptor_ValidateSibling(t *testing.T) {
	d := ct.ABCTest(chain.OpWhenChanged)
	bad := ct.ABCTest(chain.OpWhenChanged)
	bad.Chain.Links = nil
	d.Siblings = []*chain.ChainDescriptor{bad}

	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, chain.ErrEmptyChain)
}

func TestChain_SameLinks(t *testing.T) {
	a := ct.ABCTest(chain.OpWhenChanged)
	b := ct.ABCTest(chain.OpWhenChanged)
	assert.True(t, a.Chain.SameLinks(&b.Chain))
	assert.Equal(t, a.Chain.Key(), b.Chain.Key())

	c := ct.Descriptor(chain.OpWhenChanged, ct.Ptr(ct.Type("A")), ct.S("B", ct.Ptr(ct.Type("B"))), ct.S("Name", ct.String))
	assert.False(t, a.Chain.SameLinks(&c.Chain))
	assert.NotEqual(t, a.Chain.Key(), c.Chain.Key())
}

func TestDescriptor_RequiresNonPublicAccess(t *testing.T) {
	t.Run("all public", func(t *testing.T) {
		assert.False(t, ct.ABCTest(chain.OpWhenChanged).RequiresNonPublicAccess())
	})

	t.Run("private host", func(t *testing.T) {
		d := ct.Descriptor(chain.OpWhenChanged, ct.WithAccess(ct.Type("A"), chain.AccessPrivate), ct.S("Test", ct.String))
		assert.True(t, d.RequiresNonPublicAccess())
	})

	t.Run("internal link", func(t *testing.T) {
		d := ct.Descriptor(chain.OpWhenChanged, ct.Type("A"),
			ct.Step{Name: "b", Value: ct.Ptr(ct.Type("B")), Access: chain.AccessInternal},
			ct.S("Test", ct.String),
		)
		assert.True(t, d.RequiresNonPublicAccess())
	})

	t.Run("private output", func(t *testing.T) {
		d := ct.Descriptor(chain.OpWhenChanged, ct.Type("A"), ct.S("Secret", ct.WithAccess(ct.Type("secret"), chain.AccessPrivate)))
		assert.True(t, d.RequiresNonPublicAccess())
	})
}

func TestTypeRef_String(t *testing.T) {
	assert.Equal(t, "*example/model.A", ct.Ptr(ct.Type("A")).String())
	assert.Equal(t, "string", ct.String.String())

	nested := ct.Type("Inner")
	nested.Enclosing = []string{"Outer"}
	assert.Equal(t, "Outer.Inner", nested.DisplayName())
	assert.True(t, ct.Ptr(nested).Nillable())
	assert.False(t, nested.Nillable())
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "WhenChanged", chain.OpWhenChanged.String())
	assert.Equal(t, "WhenChanging", chain.OpWhenChanging.String())
	assert.Equal(t, "Bind", chain.OpBind.String())
	assert.Equal(t, "Operation(9)", chain.Operation(9).String())

	op, ok := chain.ParseOperation("Bind")
	assert.True(t, ok)
	assert.Equal(t, chain.OpBind, op)

	_, ok = chain.ParseOperation("Nope")
	assert.False(t, ok)
}

func TestAccessibility_String(t *testing.T) {
	assert.Equal(t, "public", chain.AccessPublic.String())
	assert.Equal(t, "protected internal", chain.AccessProtectedOrInternal.String())
	assert.Equal(t, "unknown", chain.Accessibility(42).String())
	assert.False(t, chain.AccessNotApplicable.Valid())
	assert.True(t, chain.AccessPrivate.Valid())
}
