package reactive

import (
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/tidwall/tinylru"

	"propchain/internal/chain"
)

// registry holds the paths registered by generated code, keyed by their
// canonical access expression. Paths registered under the same expression
// for different host or output types live side by side; Lookup tells them
// apart by type. Stored slices are never mutated in place.
var registry = cmap.New[[]any]()

// Register makes path available to the marker functions under expr.
// Registering the same host, output type and expression again replaces
// the earlier path. Generated code calls it from init.
func Register[H, T any](expr string, path Path[H, T]) {
	registry.Upsert(canonical(expr), []any{path}, func(_ bool, list, added []any) []any {
		out := make([]any, 0, len(list)+len(added))

		for _, p := range list {
			if _, same := p.(Path[H, T]); !same {
				out = append(out, p)
			}
		}

		return append(out, added...)
	})
}

// Lookup returns the path registered under expr for host type H and
// output type T.
func Lookup[H, T any](expr string) (Path[H, T], bool) {
	list, _ := registry.Get(canonical(expr))

	for _, p := range list {
		if path, ok := p.(Path[H, T]); ok {
			return path, true
		}
	}

	return Path[H, T]{}, false
}

// canonicalCacheSize bounds the memoized expression normalizations.
const canonicalCacheSize = 512

var canonicalCache = func() *tinylru.LRU {
	c := &tinylru.LRU{}
	c.Resize(canonicalCacheSize)

	return c
}()

// canonical normalizes expr the way the generator does, so spacing in the
// call site does not matter. Unparsable expressions are used as written.
func canonical(expr string) string {
	if v, ok := canonicalCache.Get(expr); ok {
		return v.(string)
	}

	c, err := chain.CanonicalExpr(expr)
	if err != nil {
		c = expr
	}

	canonicalCache.Set(expr, c)

	return c
}

// WhenChanged observes the generated path registered for expr, as Observe
// does.
func WhenChanged[H, T any](host H, expr string, onValue func(T)) (Subscription, error) {
	path, ok := Lookup[H, T](expr)
	if !ok {
		return nil, NotGenerated(expr)
	}

	return Observe(host, path, onValue), nil
}

// WhenChanging observes the generated path registered for expr, as
// ObserveChanging does.
func WhenChanging[H, T any](host H, expr string, onValue func(T)) (Subscription, error) {
	path, ok := Lookup[H, T](expr)
	if !ok {
		return nil, NotGenerated(expr)
	}

	return ObserveChanging(host, path, onValue), nil
}

// WhenChanged2 combines two generated paths, as Observe2 does.
func WhenChanged2[H, T1, T2, R any](
	host H, expr1, expr2 string,
	project func(T1, T2) R, onValue func(R),
) (Subscription, error) {
	p1, ok := Lookup[H, T1](expr1)
	if !ok {
		return nil, NotGenerated(expr1)
	}

	p2, ok := Lookup[H, T2](expr2)
	if !ok {
		return nil, NotGenerated(expr2)
	}

	return Observe2(host, p1, p2, project, onValue), nil
}

// WhenChanged3 combines three generated paths, as Observe3 does.
func WhenChanged3[H, T1, T2, T3, R any](
	host H, expr1, expr2, expr3 string,
	project func(T1, T2, T3) R, onValue func(R),
) (Subscription, error) {
	p1, ok := Lookup[H, T1](expr1)
	if !ok {
		return nil, NotGenerated(expr1)
	}

	p2, ok := Lookup[H, T2](expr2)
	if !ok {
		return nil, NotGenerated(expr2)
	}

	p3, ok := Lookup[H, T3](expr3)
	if !ok {
		return nil, NotGenerated(expr3)
	}

	return Observe3(host, p1, p2, p3, project, onValue), nil
}

// OneWayBind binds two generated paths, as BindOneWay does.
func OneWayBind[H, T, G, U any](
	host H, expr string,
	target G, targetExpr string,
	convert func(T) U,
) (Subscription, error) {
	path, ok := Lookup[H, T](expr)
	if !ok {
		return nil, NotGenerated(expr)
	}

	targetPath, ok := Lookup[G, U](targetExpr)
	if !ok {
		return nil, NotGenerated(targetExpr)
	}

	return BindOneWay(host, path, target, targetPath, convert)
}

// TwoWayBind binds two generated paths, as BindTwoWay does.
func TwoWayBind[H, T, G, U any](
	host H, expr string,
	target G, targetExpr string,
	convert func(T) U, convertBack func(U) T,
) (Subscription, error) {
	path, ok := Lookup[H, T](expr)
	if !ok {
		return nil, NotGenerated(expr)
	}

	targetPath, ok := Lookup[G, U](targetExpr)
	if !ok {
		return nil, NotGenerated(targetExpr)
	}

	return BindTwoWay(host, path, target, targetPath, convert, convertBack)
}
