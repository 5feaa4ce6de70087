package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propchain/reactive"
)

func TestNotifier_HandlersAndRemoval(t *testing.T) {
	var n reactive.Notifier

	var got []string

	h1 := n.OnPropertyChanged(func(_ any, p string) { got = append(got, "1:"+p) })
	h2 := n.OnPropertyChanged(func(_ any, p string) { got = append(got, "2:"+p) })
	assert.NotEqual(t, h1, h2)
	assert.NotZero(t, h1)

	n.RaisePropertyChanged(nil, "X")
	n.RemovePropertyChangedHandler(h1)
	n.RemovePropertyChangedHandler(h1)
	n.RaisePropertyChanged(nil, "Y")

	assert.Equal(t, []string{"1:X", "2:X", "2:Y"}, got)
}

func TestNotifier_RemoveDuringRaise(t *testing.T) {
	var n reactive.Notifier

	calls := 0

	var h2 reactive.Handle

	n.OnPropertyChanged(func(any, string) {
		calls++
		n.RemovePropertyChangedHandler(h2)
	})
	h2 = n.OnPropertyChanged(func(any, string) { calls += 10 })

	n.RaisePropertyChanged(nil, "")
	assert.Equal(t, 1, calls)

	changed, _ := n.HandlerCount()
	assert.Equal(t, 1, changed)
}

func TestSetProperty(t *testing.T) {
	c := &C{}

	var events []string

	c.OnPropertyChanging(func(_ any, p string) { events = append(events, "changing "+p+" "+c.Test()) })
	c.OnPropertyChanged(func(_ any, p string) { events = append(events, "changed "+p+" "+c.Test()) })

	assert.True(t, reactive.SetProperty(&c.Notifier, c, &c.test, "v", "Test"))
	assert.False(t, reactive.SetProperty(&c.Notifier, c, &c.test, "v", "Test"))

	assert.Equal(t, []string{"changing Test ", "changed Test v"}, events)
}
