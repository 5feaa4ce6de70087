package reactive_test

import "propchain/reactive"

type A struct {
	reactive.Notifier
	b *B
}

func (a *A) B() *B     { return a.b }
func (a *A) SetB(v *B) { reactive.SetProperty(&a.Notifier, a, &a.b, v, "B") }

func newA(test string) *A { return &A{b: &B{c: &C{test: test}}} }

type B struct {
	reactive.Notifier
	c    *C
	name string
}

func (b *B) C() *C            { return b.c }
func (b *B) SetC(v *C)        { reactive.SetProperty(&b.Notifier, b, &b.c, v, "C") }
func (b *B) Name() string     { return b.name }
func (b *B) SetName(v string) { reactive.SetProperty(&b.Notifier, b, &b.name, v, "Name") }

type C struct {
	reactive.Notifier
	test  string
	count int
}

func (c *C) Test() string     { return c.test }
func (c *C) SetTest(v string) { reactive.SetProperty(&c.Notifier, c, &c.test, v, "Test") }
func (c *C) Count() int       { return c.count }
func (c *C) SetCount(v int)   { reactive.SetProperty(&c.Notifier, c, &c.count, v, "Count") }

// Source is reached through an interface-typed property.
type Source interface {
	reactive.NotifyPropertyChanged
	Test() string
}

type Holder struct {
	reactive.Notifier
	src Source
}

func (h *Holder) Src() Source     { return h.src }
func (h *Holder) SetSrc(v Source) { reactive.SetProperty(&h.Notifier, h, &h.src, v, "Src") }

// Target is the far side of bindings.
type Target struct {
	reactive.Notifier
	test  string
	count string
}

func (t *Target) Test() string      { return t.test }
func (t *Target) SetTest(v string)  { reactive.SetProperty(&t.Notifier, t, &t.test, v, "Test") }
func (t *Target) Count() string     { return t.count }
func (t *Target) SetCount(v string) { reactive.SetProperty(&t.Notifier, t, &t.count, v, "Count") }

var (
	linkB     = reactive.Ref("B", (*A).B, (*A).SetB)
	linkC     = reactive.Ref("C", (*B).C, (*B).SetC)
	linkName  = reactive.Value("Name", (*B).Name, (*B).SetName)
	linkTest  = reactive.Value("Test", (*C).Test, (*C).SetTest)
	linkCount = reactive.Value("Count", (*C).Count, (*C).SetCount)

	pathTest  = reactive.NewPath[*A, string](linkB, linkC, linkTest)
	pathCount = reactive.NewPath[*A, int](linkB, linkC, linkCount)
	pathName  = reactive.NewPath[*A, string](linkB, linkName)
	pathC     = reactive.NewPath[*A, *C](linkB, linkC)

	targetTest  = reactive.NewPath[*Target, string](reactive.Value("Test", (*Target).Test, (*Target).SetTest))
	targetCount = reactive.NewPath[*Target, string](reactive.Value("Count", (*Target).Count, (*Target).SetCount))
)

// recorder collects emitted values.
type recorder[T any] struct {
	values []T
}

func (r *recorder[T]) add(v T) { r.values = append(r.values, v) }
