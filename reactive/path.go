package reactive

import (
	"reflect"
	"strings"
)

// Link is one property access step of a chain.
type Link struct {
	// Name is the property name matched against change notifications.
	Name string
	// Get reads the property from its owner. It reports false when the
	// owner has the wrong type or the property holds a nil reference.
	Get func(owner any) (any, bool)
	// Set writes the property. It is nil for read-only properties.
	Set func(owner, value any)
}

// Chain is an untyped, non-empty list of links.
type Chain struct {
	links []Link
}

// NewChain returns a chain over links.
func NewChain(links ...Link) (Chain, error) {
	if len(links) == 0 {
		return Chain{}, ErrEmptyChain
	}

	for _, l := range links {
		if l.Get == nil {
			return Chain{}, &LinkError{Name: l.Name, Reason: "missing getter"}
		}
	}

	return Chain{links: append([]Link(nil), links...)}, nil
}

// Len returns the number of links.
func (c Chain) Len() int {
	return len(c.links)
}

// Link returns link i.
func (c Chain) Link(i int) Link {
	return c.links[i]
}

// Leaf returns the last link.
func (c Chain) Leaf() Link {
	return c.links[len(c.links)-1]
}

// Path returns the dotted property names, e.g. "B.C.Test".
func (c Chain) Path() string {
	names := make([]string, len(c.links))
	for i, l := range c.links {
		names[i] = l.Name
	}

	return strings.Join(names, ".")
}

// Resolve walks every link but the last from root and returns the owner of
// the leaf property. It reports false when a reference along the way is nil.
func (c Chain) Resolve(root any) (any, bool) {
	owner := root

	for _, l := range c.links[:len(c.links)-1] {
		next, ok := l.Get(owner)
		if !ok {
			return nil, false
		}

		owner = next
	}

	return owner, owner != nil
}

// Read returns the terminal value reached from root.
func (c Chain) Read(root any) (any, bool) {
	owner, ok := c.Resolve(root)
	if !ok {
		return nil, false
	}

	return c.Leaf().Get(owner)
}

// Write stores value into the leaf property reached from root. It is a
// no-op when the leaf owner is nil and reports whether something was
// written.
func (c Chain) Write(root, value any) bool {
	leaf := c.Leaf()
	if leaf.Set == nil {
		return false
	}

	owner, ok := c.Resolve(root)
	if !ok {
		return false
	}

	leaf.Set(owner, value)

	return true
}

// Writable reports whether the leaf has a setter.
func (c Chain) Writable() bool {
	return c.Leaf().Set != nil
}

// Path is a chain from a host of type H to a terminal value of type T.
type Path[H, T any] struct {
	chain Chain
}

// NewPath returns the typed path over links. It panics when links is
// empty or a link has no getter, which only happens with hand-written
// paths.
func NewPath[H, T any](links ...Link) Path[H, T] {
	c, err := NewChain(links...)
	if err != nil {
		panic(err)
	}

	return Path[H, T]{chain: c}
}

// Chain returns the untyped chain.
func (p Path[H, T]) Chain() Chain {
	return p.chain
}

// String returns the dotted property names.
func (p Path[H, T]) String() string {
	return p.chain.Path()
}

// Get returns the current terminal value, or the zero T when a reference
// along the path is nil.
func (p Path[H, T]) Get(host H) T {
	v, _ := p.chain.Read(host)
	return as[T](v)
}

// Ref returns a link to a pointer-valued property. A nil pointer is
// reported as absent. set may be nil.
func Ref[O, V any](name string, get func(O) *V, set func(O, *V)) Link {
	l := Link{
		Name: name,
		Get: func(owner any) (any, bool) {
			o, ok := owner.(O)
			if !ok {
				return nil, false
			}

			v := get(o)
			if v == nil {
				return nil, false
			}

			return v, true
		},
	}

	if set != nil {
		l.Set = func(owner, value any) {
			if o, ok := owner.(O); ok {
				set(o, as[*V](value))
			}
		}
	}

	return l
}

// Value returns a link to a property of any other type. Nil interfaces
// and interfaces holding a nil pointer, map, channel or func are reported
// as absent. set may be nil.
func Value[O, V any](name string, get func(O) V, set func(O, V)) Link {
	l := Link{
		Name: name,
		Get: func(owner any) (any, bool) {
			o, ok := owner.(O)
			if !ok {
				return nil, false
			}

			v := any(get(o))
			if isNil(v) {
				return nil, false
			}

			return v, true
		},
	}

	if set != nil {
		l.Set = func(owner, value any) {
			if o, ok := owner.(O); ok {
				set(o, as[V](value))
			}
		}
	}

	return l
}

// isNil reports whether v is nil or a typed nil reference. It looks at
// nothing but the reference itself.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// as converts an untyped value, absent values become the zero T.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
