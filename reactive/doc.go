// Package reactive is the chain observation runtime.
//
// A Path describes how to walk from a host object to a terminal value
// through a fixed list of property links. Observing a path subscribes to
// the change notifications of every object along it, rebinds the
// downstream part of the walk whenever an intermediate property changes and
// reports the terminal value to the consumer:
//
//	sub := reactive.Observe(a, pathABCTest, func(v string) {
//		fmt.Println("test is now", v)
//	})
//	defer sub.Dispose()
//
// Paths are normally produced by the propchain generator, which registers
// them under their access expression so the marker functions (WhenChanged,
// OneWayBind, ...) can find them. They can also be written by hand with
// Ref and Value.
//
// Everything in this package runs synchronously inside the notification
// callbacks of the observed objects. A single observation must not see its
// objects mutated from several goroutines at once.
package reactive
