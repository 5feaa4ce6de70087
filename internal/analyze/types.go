package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/types/typeutil"

	"propchain/internal/chain"
)

// ErrUnsupportedType is returned for types a chain cannot pass through.
var ErrUnsupportedType = errors.New("unsupported type")

// typeRef converts a go/types type into the chain model.
func (a *Analyzer) typeRef(t types.Type) (chain.TypeRef, error) {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return chain.TypeRef{ID: chain.TypeID{Name: tt.Name()}}, nil

	case *types.Named:
		return a.namedRef(tt)

	case *types.Pointer:
		inner, err := a.typeRef(tt.Elem())
		if err != nil {
			return chain.TypeRef{}, err
		}

		if inner.Pointer || inner.Slice {
			return chain.TypeRef{}, fmt.Errorf("%w %s: nested pointer", ErrUnsupportedType, t)
		}

		inner.Pointer = true

		return inner, nil

	case *types.Slice:
		inner, err := a.typeRef(tt.Elem())
		if err != nil {
			return chain.TypeRef{}, err
		}

		if inner.Slice {
			return chain.TypeRef{}, fmt.Errorf("%w %s: nested slice", ErrUnsupportedType, t)
		}

		inner.Slice = true

		return inner, nil

	case *types.Interface:
		if tt.Empty() {
			return chain.TypeRef{ID: chain.TypeID{Name: "any"}, Interface: true}, nil
		}
	}

	// Maps, channels, functions, arrays, anonymous structs.
	return chain.TypeRef{}, fmt.Errorf("%w %s", ErrUnsupportedType, t)
}

func (a *Analyzer) namedRef(named *types.Named) (chain.TypeRef, error) {
	if named.TypeArgs().Len() > 0 {
		return chain.TypeRef{}, fmt.Errorf("%w %s: generic type", ErrUnsupportedType, named)
	}

	obj := named.Obj()
	_, isInterface := named.Underlying().(*types.Interface)

	// Predeclared "error".
	if obj.Pkg() == nil {
		return chain.TypeRef{ID: chain.TypeID{Name: obj.Name()}, Interface: isInterface}, nil
	}

	return chain.TypeRef{
		ID:            chain.TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()},
		Interface:     isInterface,
		Accessibility: accessOf(obj.Name(), obj.Pkg()),
		Local:         a.local[obj.Pkg().Path()],
	}, nil
}

// accessOf maps Go visibility onto the accessibility levels: unexported
// names are private, exported names under an internal directory are
// internal, everything else is public.
func accessOf(name string, pkg *types.Package) chain.Accessibility {
	if !token.IsExported(name) {
		return chain.AccessPrivate
	}

	if pkg != nil && isInternalPath(pkg.Path()) {
		return chain.AccessInternal
	}

	return chain.AccessPublic
}

func isInternalPath(pkgPath string) bool {
	return strings.Contains("/"+pkgPath+"/", "/internal/")
}

// nillable reports whether values of t can be nil and carry change
// notifications: pointers and interfaces.
func nillable(t types.Type) bool {
	switch types.Unalias(t).Underlying().(type) {
	case *types.Pointer, *types.Interface:
		return true
	default:
		return false
	}
}

// declaringPackage returns the package of the named type behind t, used to
// see unexported members.
func declaringPackage(t types.Type) *types.Package {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}

	if named, ok := t.(*types.Named); ok {
		return named.Obj().Pkg()
	}

	return nil
}

// conversionKind classifies a conversion by the type it produces.
func conversionKind(result types.Type) chain.ConversionKind {
	if nillable(result) {
		return chain.ConversionObject
	}

	return chain.ConversionValue
}

// propertyNames lists the fields and methods reachable on t, for
// suggestions on unknown properties.
func propertyNames(t types.Type) []string {
	var names []string

	for _, sel := range typeutil.IntuitiveMethodSet(t, nil) {
		names = append(names, sel.Obj().Name())
	}

	base := t
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		base = ptr.Elem()
	}

	if st, ok := base.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			names = append(names, st.Field(i).Name())
		}
	}

	return names
}
