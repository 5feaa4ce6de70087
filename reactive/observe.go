package reactive

// Subscription is a running observation or binding.
type Subscription interface {
	// Dispose releases every subscription held. Calling it again has no
	// effect.
	Dispose()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

// Dispose calls f.
func (f SubscriptionFunc) Dispose() {
	f()
}

// composite disposes its parts in reverse order.
type composite []Subscription

func (c composite) Dispose() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i].Dispose()
	}
}

// Observe calls onValue with the current terminal value of path and again
// after every change along it. The zero T is reported while a reference
// along the path is nil.
//
// Equal values are not filtered; a source that raises a notification
// without changing its value produces a repeated emission.
func Observe[H, T any](host H, path Path[H, T], onValue func(T)) Subscription {
	return ObserveChain(host, path.chain, false, func(v any, _ bool) {
		onValue(as[T](v))
	})
}

// ObserveChanging is like Observe but reports, from pre-change
// notifications, the value that is about to be replaced.
func ObserveChanging[H, T any](host H, path Path[H, T], onValue func(T)) Subscription {
	return ObserveChain(host, path.chain, true, func(v any, _ bool) {
		onValue(as[T](v))
	})
}
