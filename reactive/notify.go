package reactive

import "sync"

// Handle identifies a registered change handler.
type Handle uint64

// firstHandle is the first handle returned by a Notifier, the zero Handle is
// never valid.
const firstHandle Handle = 1

// PropertyChangedFunc is called with the object that raised the
// notification and the name of the affected property. An empty name means
// that every property may have changed.
type PropertyChangedFunc func(sender any, property string)

// NotifyPropertyChanged is implemented by objects that announce property
// changes after they happened.
type NotifyPropertyChanged interface {
	OnPropertyChanged(fn PropertyChangedFunc) Handle
	RemovePropertyChangedHandler(h Handle)
}

// NotifyPropertyChanging is implemented by objects that announce property
// changes before they happen.
type NotifyPropertyChanging interface {
	OnPropertyChanging(fn PropertyChangedFunc) Handle
	RemovePropertyChangingHandler(h Handle)
}

type handler struct {
	handle Handle
	fn     PropertyChangedFunc
}

// Notifier implements NotifyPropertyChanged and NotifyPropertyChanging. It
// is meant to be embedded:
//
//	type Person struct {
//		reactive.Notifier
//		name string
//	}
//
//	func (p *Person) SetName(v string) {
//		reactive.SetProperty(&p.Notifier, p, &p.name, v, "Name")
//	}
//
// The zero value is ready to use. Handlers are called outside the lock on
// a snapshot, they may add or remove handlers freely.
type Notifier struct {
	lock       sync.Mutex
	nextHandle Handle
	changed    []handler
	changing   []handler
}

// OnPropertyChanged registers fn for post-change notifications.
func (n *Notifier) OnPropertyChanged(fn PropertyChangedFunc) Handle {
	n.lock.Lock()
	defer n.lock.Unlock()

	h := n.newHandle()
	n.changed = append(n.changed, handler{handle: h, fn: fn})

	return h
}

// RemovePropertyChangedHandler unregisters a post-change handler. Unknown
// handles are ignored.
func (n *Notifier) RemovePropertyChangedHandler(h Handle) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.changed = removeHandler(n.changed, h)
}

// OnPropertyChanging registers fn for pre-change notifications.
func (n *Notifier) OnPropertyChanging(fn PropertyChangedFunc) Handle {
	n.lock.Lock()
	defer n.lock.Unlock()

	h := n.newHandle()
	n.changing = append(n.changing, handler{handle: h, fn: fn})

	return h
}

// RemovePropertyChangingHandler unregisters a pre-change handler.
func (n *Notifier) RemovePropertyChangingHandler(h Handle) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.changing = removeHandler(n.changing, h)
}

// RaisePropertyChanged notifies post-change handlers.
func (n *Notifier) RaisePropertyChanged(sender any, property string) {
	n.lock.Lock()
	snapshot := append([]handler(nil), n.changed...)
	n.lock.Unlock()

	n.call(snapshot, sender, property, false)
}

// RaisePropertyChanging notifies pre-change handlers.
func (n *Notifier) RaisePropertyChanging(sender any, property string) {
	n.lock.Lock()
	snapshot := append([]handler(nil), n.changing...)
	n.lock.Unlock()

	n.call(snapshot, sender, property, true)
}

// HandlerCount returns the number of registered post-change and pre-change
// handlers.
func (n *Notifier) HandlerCount() (changed, changing int) {
	n.lock.Lock()
	defer n.lock.Unlock()

	return len(n.changed), len(n.changing)
}

// call invokes the snapshot, skipping handlers removed by an earlier
// handler of the same round.
func (n *Notifier) call(snapshot []handler, sender any, property string, changing bool) {
	for _, h := range snapshot {
		if !n.registered(h.handle, changing) {
			continue
		}

		h.fn(sender, property)
	}
}

func (n *Notifier) registered(h Handle, changing bool) bool {
	n.lock.Lock()
	defer n.lock.Unlock()

	list := n.changed
	if changing {
		list = n.changing
	}

	for _, entry := range list {
		if entry.handle == h {
			return true
		}
	}

	return false
}

func (n *Notifier) newHandle() Handle {
	if n.nextHandle < firstHandle {
		n.nextHandle = firstHandle
	}

	h := n.nextHandle
	n.nextHandle++

	return h
}

func removeHandler(list []handler, h Handle) []handler {
	for i, entry := range list {
		if entry.handle == h {
			return append(list[:i:i], list[i+1:]...)
		}
	}

	return list
}

// SetProperty stores value into *field and raises the pre-change and
// post-change notifications for property. Nothing is raised when the value
// is unchanged. It reports whether the value changed.
func SetProperty[T comparable](n *Notifier, sender any, field *T, value T, property string) bool {
	if *field == value {
		return false
	}

	n.RaisePropertyChanging(sender, property)
	*field = value
	n.RaisePropertyChanged(sender, property)

	return true
}
