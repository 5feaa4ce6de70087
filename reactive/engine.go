package reactive

// NodeState is the state of one ObservationNode.
type NodeState int

const (
	// NodeUnbound - not reached, a reference before it is nil.
	NodeUnbound NodeState = iota
	// NodeBound - holds an intermediate object and listens to it.
	NodeBound
	// NodeTerminal - holds the owner of the leaf property.
	NodeTerminal
)

// String returns the state name.
func (s NodeState) String() string {
	switch s {
	case NodeUnbound:
		return "unbound"
	case NodeBound:
		return "bound"
	case NodeTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// ObservationNode is the live state of link i of an observation: the
// object owning the property and the subscriptions held on it.
type ObservationNode struct {
	State NodeState
	// Owner is the object whose property Link(i) is read.
	Owner any

	gen      uint64
	changed  unsubscriber
	changing unsubscriber
}

type unsubscriber func()

func (n *ObservationNode) release() {
	if n.changing != nil {
		n.changing()
	}

	if n.changed != nil {
		n.changed()
	}

	*n = ObservationNode{}
}

// Observation is one running observation of a chain from a host object.
// Nodes are indexed like the chain's links; a change of link i rebuilds
// nodes i+1 onward.
type Observation struct {
	chain    Chain
	nodes    []ObservationNode
	changing bool
	emit     func(value any, ok bool)
	disposed bool
	gen      uint64
}

// ObserveChain starts observing c from host and reports the terminal value
// to emit, first immediately and then after every change along the chain.
// ok is false when a reference along the chain is nil.
//
// When changing is true, values are reported from pre-change notifications
// and hold the value about to be replaced.
func ObserveChain(host any, c Chain, changing bool, emit func(value any, ok bool)) *Observation {
	o := &Observation{
		chain:    c,
		nodes:    make([]ObservationNode, c.Len()),
		changing: changing,
		emit:     emit,
	}

	o.bindFrom(0, host, true)
	o.emit(o.Value())

	return o
}

// Value returns the current terminal value.
func (o *Observation) Value() (any, bool) {
	leaf := &o.nodes[len(o.nodes)-1]
	if leaf.State != NodeTerminal {
		return nil, false
	}

	return o.chain.Leaf().Get(leaf.Owner)
}

// LeafOwner returns the object owning the leaf property, if the chain
// currently reaches it.
func (o *Observation) LeafOwner() (any, bool) {
	leaf := &o.nodes[len(o.nodes)-1]
	if leaf.State != NodeTerminal {
		return nil, false
	}

	return leaf.Owner, true
}

// States returns the current state of every node.
func (o *Observation) States() []NodeState {
	states := make([]NodeState, len(o.nodes))
	for i := range o.nodes {
		states[i] = o.nodes[i].State
	}

	return states
}

// Dispose releases every subscription, leaf first. It is idempotent.
func (o *Observation) Dispose() {
	if o.disposed {
		return
	}

	o.disposed = true
	o.teardownFrom(0)
}

// bindFrom binds nodes i onward starting with obj as owner of link i. The
// walk stops at the first nil reference, leaving the rest unbound.
func (o *Observation) bindFrom(i int, obj any, present bool) {
	last := len(o.nodes) - 1

	for j := i; j <= last; j++ {
		if !present || isNil(obj) {
			return
		}

		node := &o.nodes[j]
		node.Owner = obj
		node.State = NodeBound

		if j == last {
			node.State = NodeTerminal
		}

		o.subscribe(j, node)

		if j < last {
			obj, present = o.chain.Link(j).Get(obj)
		}
	}
}

// teardownFrom releases nodes i onward, leaf first. Unbound nodes hold
// nothing and are skipped.
func (o *Observation) teardownFrom(i int) {
	for j := len(o.nodes) - 1; j >= i; j-- {
		if o.nodes[j].State != NodeUnbound {
			o.nodes[j].release()
		}
	}
}

// subscribe listens to the owner of node i. Handlers are tagged with a
// generation so a notification delivered to a superseded node is ignored.
func (o *Observation) subscribe(i int, node *ObservationNode) {
	owner := node.Owner
	name := o.chain.Link(i).Name

	o.gen++
	gen := o.gen
	node.gen = gen

	if src, ok := owner.(NotifyPropertyChanged); ok {
		h := src.OnPropertyChanged(func(_ any, property string) {
			if matches(property, name) {
				o.onChanged(i, gen)
			}
		})
		node.changed = func() { src.RemovePropertyChangedHandler(h) }
	}

	if !o.changing {
		return
	}

	if src, ok := owner.(NotifyPropertyChanging); ok {
		h := src.OnPropertyChanging(func(_ any, property string) {
			if matches(property, name) {
				o.onChanging(i, gen)
			}
		})
		node.changing = func() { src.RemovePropertyChangingHandler(h) }
	}
}

// onChanged handles a post-change notification of link i: the downstream
// nodes are rebuilt from the new value and, unless this observation
// reports pre-change values, the terminal value is emitted.
func (o *Observation) onChanged(i int, gen uint64) {
	if o.disposed || o.nodes[i].gen != gen {
		return
	}

	owner := o.nodes[i].Owner

	if i < len(o.nodes)-1 {
		o.teardownFrom(i + 1)

		next, ok := o.chain.Link(i).Get(owner)
		o.bindFrom(i+1, next, ok)
	}

	if !o.changing {
		o.emit(o.Value())
	}
}

// onChanging handles a pre-change notification of link i by emitting the
// value that is about to be replaced.
func (o *Observation) onChanging(i int, gen uint64) {
	if o.disposed || o.nodes[i].gen != gen {
		return
	}

	o.emit(o.Value())
}

// matches reports whether a notification for property concerns the link
// named name. An empty property means every property changed.
func matches(property, name string) bool {
	return property == "" || property == name
}
