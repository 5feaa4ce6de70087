package plan

import "strconv"

// NameGen hands out synthetic identifiers. One NameGen serves one pass:
// names never collide within the pass and are not meant to be stable
// across passes.
type NameGen struct {
	prefix string
	next   int
}

// NewNameGen returns a generator whose names start with prefix.
func NewNameGen(prefix string) *NameGen {
	return &NameGen{prefix: prefix}
}

// Next returns a fresh name.
func (g *NameGen) Next() string {
	name := g.prefix + strconv.Itoa(g.next)
	g.next++

	return name
}

// Issued returns how many names were handed out.
func (g *NameGen) Issued() int {
	return g.next
}
