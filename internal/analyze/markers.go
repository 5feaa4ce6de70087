package analyze

import "propchain/internal/chain"

// ReactivePkg is the import path of the runtime package declaring the
// marker functions.
const ReactivePkg = "propchain/reactive"

// marker describes the arguments of one marker function. Type argument 0
// is always the host type and argument 0 the host value.
type marker struct {
	op chain.Operation
	// exprs are the argument indexes of the access expressions rooted at
	// the host; outputs the matching type argument indexes.
	exprs   []int
	outputs []int
	// bind markers carry a target (argument 2, type argument 2) with an
	// expression at argument 3 producing type argument 3.
	bind        bool
	twoWay      bool
	convert     int
	convertBack int
}

// minArgs returns the number of arguments the marker needs.
func (m marker) minArgs() int {
	n := 0
	for _, i := range append(append([]int{}, m.exprs...), m.convert, m.convertBack) {
		n = max(n, i+1)
	}

	if m.bind {
		n = max(n, 4)
	}

	return n
}

var markers = map[string]marker{
	"WhenChanged": {
		op: chain.OpWhenChanged, exprs: []int{1}, outputs: []int{1},
		convert: -1, convertBack: -1,
	},
	"WhenChanging": {
		op: chain.OpWhenChanging, exprs: []int{1}, outputs: []int{1},
		convert: -1, convertBack: -1,
	},
	"WhenChanged2": {
		op: chain.OpWhenChanged, exprs: []int{1, 2}, outputs: []int{1, 2},
		convert: -1, convertBack: -1,
	},
	"WhenChanged3": {
		op: chain.OpWhenChanged, exprs: []int{1, 2, 3}, outputs: []int{1, 2, 3},
		convert: -1, convertBack: -1,
	},
	"OneWayBind": {
		op: chain.OpBind, exprs: []int{1}, outputs: []int{1},
		bind: true, convert: 4, convertBack: -1,
	},
	"TwoWayBind": {
		op: chain.OpBind, exprs: []int{1}, outputs: []int{1},
		bind: true, twoWay: true, convert: 4, convertBack: 5,
	},
}
