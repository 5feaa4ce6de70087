package reactive

// ObserveMany observes several chains of host independently. Once every
// chain has reported a value, and after each later emission of any of
// them, project is evaluated over the latest value of every chain and its
// result passed to onValue. Values of chains whose references are nil are
// reported as nil.
func ObserveMany[H, R any](host H, chains []Chain, project func(values []any) R, onValue func(R)) Subscription {
	latest := make([]any, len(chains))
	seen := make([]bool, len(chains))
	pending := len(chains)

	subs := make(composite, 0, len(chains))

	for i, c := range chains {
		subs = append(subs, ObserveChain(host, c, false, func(v any, _ bool) {
			latest[i] = v

			if !seen[i] {
				seen[i] = true
				pending--
			}

			if pending == 0 {
				onValue(project(append([]any(nil), latest...)))
			}
		}))
	}

	return subs
}

// Observe2 combines two paths of host with project.
func Observe2[H, T1, T2, R any](
	host H, p1 Path[H, T1], p2 Path[H, T2],
	project func(T1, T2) R, onValue func(R),
) Subscription {
	return ObserveMany(host, []Chain{p1.chain, p2.chain}, func(v []any) R {
		return project(as[T1](v[0]), as[T2](v[1]))
	}, onValue)
}

// Observe3 combines three paths of host with project.
func Observe3[H, T1, T2, T3, R any](
	host H, p1 Path[H, T1], p2 Path[H, T2], p3 Path[H, T3],
	project func(T1, T2, T3) R, onValue func(R),
) Subscription {
	return ObserveMany(host, []Chain{p1.chain, p2.chain, p3.chain}, func(v []any) R {
		return project(as[T1](v[0]), as[T2](v[1]), as[T3](v[2]))
	}, onValue)
}
