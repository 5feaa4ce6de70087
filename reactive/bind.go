package reactive

// BindOneWay writes every value observed on path into the property
// targetPath designates on target, passing it through convert first. A nil
// convert requires T to be assignable to U.
//
// Writes are skipped while a reference along targetPath is nil.
func BindOneWay[H, T, G, U any](
	host H, path Path[H, T],
	target G, targetPath Path[G, U],
	convert func(T) U,
) (Subscription, error) {
	if !targetPath.chain.Writable() {
		return nil, &BindError{Path: targetPath.String(), Err: ErrReadOnly}
	}

	convert = orIdentity(convert)

	sub := ObserveChain(host, path.chain, false, func(v any, _ bool) {
		targetPath.chain.Write(target, convert(as[T](v)))
	})

	return sub, nil
}

// BindTwoWay binds path and targetPath in both directions. target first
// receives the current value of path. Afterwards every change of the target
// property is converted with convertBack and written into the owner of the
// leaf of path, that is the object the last link belongs to. That write is
// skipped while that owner is nil.
//
// Writes caused by the binding itself are not propagated back.
func BindTwoWay[H, T, G, U any](
	host H, path Path[H, T],
	target G, targetPath Path[G, U],
	convert func(T) U, convertBack func(U) T,
) (Subscription, error) {
	if !targetPath.chain.Writable() {
		return nil, &BindError{Path: targetPath.String(), Err: ErrReadOnly}
	}

	if !path.chain.Writable() {
		return nil, &BindError{Path: path.String(), Err: ErrReadOnly}
	}

	convert = orIdentity(convert)
	convertBack = orIdentity(convertBack)

	var syncing bool

	guarded := func(write func()) {
		if syncing {
			return
		}

		syncing = true
		defer func() { syncing = false }()

		write()
	}

	source := ObserveChain(host, path.chain, false, func(v any, _ bool) {
		guarded(func() {
			targetPath.chain.Write(target, convert(as[T](v)))
		})
	})

	started := false
	back := ObserveChain(target, targetPath.chain, false, func(v any, _ bool) {
		if !started {
			return
		}

		guarded(func() {
			owner, ok := source.LeafOwner()
			if !ok {
				return
			}

			path.chain.Leaf().Set(owner, convertBack(as[U](v)))
		})
	})
	started = true

	return composite{source, back}, nil
}

// orIdentity returns convert, or an identity conversion when it is nil.
func orIdentity[T, U any](convert func(T) U) func(T) U {
	if convert != nil {
		return convert
	}

	return func(v T) U {
		return as[U](v)
	}
}
