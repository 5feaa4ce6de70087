// Package broken holds call sites the analyzer must reject, next to one it
// accepts. It is only loaded by tests.
package broken

import "propchain/reactive"

type Node struct {
	reactive.Notifier

	Next  *Node
	Label string
	Tags  map[string]string
	Value Leaf
}

type Leaf struct {
	Text string
}

type Plain struct {
	Label string
}

func (n *Node) Lookup(key string) string { return n.Tags[key] }

var dynamic = "Next.Label"

func Calls(n *Node) {
	_, _ = reactive.WhenChanged(n, "Next.Label", func(string) {})
	_, _ = reactive.WhenChanged(n, dynamic, func(string) {})
	_, _ = reactive.WhenChanged(n, "Next.Missing", func(string) {})
	_, _ = reactive.WhenChanged(n, "Value.Text", func(string) {})
	_, _ = reactive.WhenChanged(n, "Tags", func(map[string]string) {})
	_, _ = reactive.WhenChanged(n, "Lookup", func(string) {})
	_, _ = reactive.WhenChanged(n, "Next.Label", func(int) {})
	_, _ = reactive.WhenChanged(Plain{}, "Label", func(string) {})
	_, _ = reactive.WhenChanged(n, "Next.Labl", func(string) {})
}
