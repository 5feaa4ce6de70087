package reactive_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propchain/reactive"
)

func init() {
	reactive.Register("B.C().Test()", pathTest)
	reactive.Register("B.C().Count()", pathCount)
	reactive.Register("B.Name()", pathName)
	reactive.Register("Test()", targetTest)
	reactive.Register("Count()", targetCount)
}

func TestLookup(t *testing.T) {
	p, ok := reactive.Lookup[*A, string]("B . C().Test()")
	require.True(t, ok)
	assert.Equal(t, "B.C.Test", p.String())

	_, ok = reactive.Lookup[*A, int]("B.C().Test()")
	assert.False(t, ok)

	_, ok = reactive.Lookup[*A, string]("B.C().Missing()")
	assert.False(t, ok)
}

func TestRegister_SameExprDifferentTypes(t *testing.T) {
	alt := reactive.NewPath[*B, string](linkName)
	reactive.Register("B.Name()", alt)

	p, ok := reactive.Lookup[*A, string]("B.Name()")
	require.True(t, ok)
	assert.Equal(t, "B.Name", p.String())

	q, ok := reactive.Lookup[*B, string]("B.Name()")
	require.True(t, ok)
	assert.Equal(t, "Name", q.String())
}

func TestWhenChanged(t *testing.T) {
	a := newA("start")

	var rec recorder[string]

	sub, err := reactive.WhenChanged(a, "B.C().Test()", rec.add)
	require.NoError(t, err)
	defer sub.Dispose()

	a.B().C().SetTest("next")
	assert.Equal(t, []string{"start", "next"}, rec.values)
}

func TestWhenChanging(t *testing.T) {
	a := newA("start")

	var rec recorder[string]

	sub, err := reactive.WhenChanging(a, "B.C().Test()", rec.add)
	require.NoError(t, err)
	defer sub.Dispose()

	a.B().C().SetTest("next")
	assert.Equal(t, []string{"start", "start"}, rec.values)
}

func TestWhenChanged_NotGenerated(t *testing.T) {
	_, err := reactive.WhenChanged(newA(""), "B.Unknown()", func(string) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, reactive.ErrChainNotGenerated))
	assert.Contains(t, err.Error(), "B.Unknown()")
}

func TestWhenChanged2And3(t *testing.T) {
	a := newA("t")

	var two recorder[string]

	sub, err := reactive.WhenChanged2(a, "B.C().Test()", "B.Name()",
		func(test, name string) string { return test + name }, two.add)
	require.NoError(t, err)
	defer sub.Dispose()

	var three recorder[int]

	sub3, err := reactive.WhenChanged3(a, "B.C().Test()", "B.C().Count()", "B.Name()",
		func(test string, count int, name string) int { return len(test) + count + len(name) },
		three.add)
	require.NoError(t, err)
	defer sub3.Dispose()

	a.B().SetName("ab")

	assert.Equal(t, []string{"t", "tab"}, two.values)
	assert.Equal(t, []int{1, 3}, three.values)

	_, err = reactive.WhenChanged3(a, "B.C().Test()", "B.C().Count()", "B.Missing()",
		func(string, int, string) int { return 0 }, three.add)
	assert.ErrorIs(t, err, reactive.ErrChainNotGenerated)
}

func TestOneWayBind(t *testing.T) {
	a := newA("start")
	target := &Target{}

	sub, err := reactive.OneWayBind(a, "B.C().Count()", target, "Count()",
		func(n int) string { return string(rune('0' + n)) })
	require.NoError(t, err)
	defer sub.Dispose()

	a.B().C().SetCount(5)
	assert.Equal(t, "5", target.Count())
}

func TestTwoWayBind(t *testing.T) {
	a := newA("start")
	target := &Target{}

	sub, err := reactive.TwoWayBind[*A, string, *Target, string](a, "B.C().Test()", target, "Test()", nil, nil)
	require.NoError(t, err)
	defer sub.Dispose()

	assert.Equal(t, "start", target.Test())

	target.SetTest("back")
	assert.Equal(t, "back", a.B().C().Test())

	_, err = reactive.TwoWayBind[*A, string, *Target, string](a, "B.C().Test()", target, "Nope()", nil, nil)
	assert.ErrorIs(t, err, reactive.ErrChainNotGenerated)
}
