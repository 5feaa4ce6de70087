package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/types"
	"path"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"propchain/internal/chain"
	"propchain/internal/diagnostic"
	"propchain/internal/match"
	"propchain/internal/visibility"
)

// Result is the outcome of Extract.
type Result struct {
	// Descriptors holds one descriptor per accepted call site; chains
	// requested together hang off the first one as siblings.
	Descriptors []*chain.ChainDescriptor
	// Diagnostics reports the call sites that were rejected.
	Diagnostics diagnostic.Diagnostics
}

// resolveError is a rejected access expression.
type resolveError struct {
	code string
	msg  string
}

func (e *resolveError) Error() string {
	return e.msg
}

func reject(code, format string, args ...any) *resolveError {
	return &resolveError{code: code, msg: fmt.Sprintf(format, args...)}
}

// callSite carries what every chain of one marker call shares.
type callSite struct {
	pkg  *packages.Package
	site chain.CallSite
	recv types.Object // receiver of the enclosing method, if any
}

// Extract walks every loaded file and turns marker calls into chain
// descriptors. A rejected call site is reported and skipped.
func (a *Analyzer) Extract() *Result {
	res := &Result{}

	skipped := 0

	for _, pkg := range a.pkgs {
		for _, file := range pkg.Syntax {
			name := path.Join(pkg.PkgPath, filepath.Base(pkg.Fset.Position(file.Pos()).Filename))
			if a.excluded(name) {
				a.log.Debug().Str("file", name).Msg("file excluded")
				skipped++

				continue
			}

			a.extractFile(pkg, file, res)
		}
	}

	a.log.Info().
		Int("skipped", skipped).
		Int("packages", len(a.pkgs)).
		Int("descriptors", len(res.Descriptors)).
		Int("rejected", len(res.Diagnostics.Errors)).
		Msg("extracted chains")

	return res
}

// excluded reports whether the file, named "pkgPath/base.go", matches an
// exclude pattern.
func (a *Analyzer) excluded(name string) bool {
	for _, pattern := range a.exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}

	return false
}

func (a *Analyzer) extractFile(pkg *packages.Package, file *ast.File, res *Result) {
	for _, decl := range file.Decls {
		var recv types.Object

		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil && len(fn.Recv.List) > 0 {
			if names := fn.Recv.List[0].Names; len(names) > 0 {
				recv = pkg.TypesInfo.Defs[names[0]]
			}
		}

		ast.Inspect(decl, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			pos := pkg.Fset.Position(call.Pos())
			cs := callSite{
				pkg:  pkg,
				recv: recv,
				site: chain.CallSite{
					PkgPath: pkg.PkgPath,
					File:    path.Join(pkg.PkgPath, filepath.Base(pos.Filename)),
					Line:    pos.Line,
				},
			}

			a.visitCall(cs, call, res)

			return true
		})
	}
}

// visitCall handles one call expression if it calls a marker.
func (a *Analyzer) visitCall(cs callSite, call *ast.CallExpr, res *Result) {
	info := cs.pkg.TypesInfo

	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != ReactivePkg {
		return
	}

	m, ok := markers[fn.Name()]
	if !ok {
		return
	}

	site := cs.site.String()

	ident := calleeIdent(call.Fun)
	inst, ok := info.Instances[ident]
	if !ok || len(call.Args) < m.minArgs() {
		res.Diagnostics.AddError(diagnostic.CodeMissingArguments,
			fmt.Sprintf("%s call cannot be analyzed", fn.Name()), "", site)
		return
	}

	typeArgs := inst.TypeArgs
	host := typeArgs.At(0)

	a.log.Debug().Str("site", site).Str("marker", fn.Name()).Str("host", TypeString(host)).Msg("found marker call")

	var ds []*chain.ChainDescriptor

	for k, argIdx := range m.exprs {
		d, err := a.describe(cs, host, call.Args[argIdx], typeArgs.At(m.outputs[k]), m.op)
		if err != nil {
			report(&res.Diagnostics, err, TypeString(host), site)
			return
		}

		if k == 0 && isReceiver(info, call.Args[0], cs.recv) {
			d.Receiver = chain.ReceiverSelf
		}

		ds = append(ds, d)
	}

	primary := ds[0]
	primary.Siblings = ds[1:]

	if !m.bind {
		res.Descriptors = append(res.Descriptors, primary)
		return
	}

	target := typeArgs.At(2)

	td, err := a.describe(cs, target, call.Args[3], typeArgs.At(3), m.op)
	if err != nil {
		report(&res.Diagnostics, err, TypeString(target), site)
		return
	}

	if !writable(td.Chain) {
		res.Diagnostics.AddError(diagnostic.CodeReadOnlyLeaf,
			fmt.Sprintf("bind target %s has no setter", td.Expr), TypeString(target), site)
		return
	}

	if m.twoWay && !writable(primary.Chain) {
		res.Diagnostics.AddError(diagnostic.CodeReadOnlyLeaf,
			fmt.Sprintf("two-way source %s has no setter", primary.Expr), TypeString(host), site)
		return
	}

	primary.Conversion = conversion(info, call.Args[m.convert], typeArgs.At(3))
	if m.twoWay {
		primary.BackConversion = conversion(info, call.Args[m.convertBack], typeArgs.At(1))
	}

	res.Descriptors = append(res.Descriptors, primary, td)
}

// describe resolves one constant access expression against host.
func (a *Analyzer) describe(
	cs callSite,
	host types.Type,
	arg ast.Expr,
	want types.Type,
	op chain.Operation,
) (*chain.ChainDescriptor, error) {
	expr, ok := constString(cs.pkg.TypesInfo, arg)
	if !ok {
		return nil, reject(diagnostic.CodeNonConstantExpr,
			"access expression %s is not a string constant", types.ExprString(arg))
	}

	c, err := a.resolve(host, expr, want)
	if err != nil {
		return nil, err
	}

	canon, err := chain.CanonicalExpr(expr)
	if err != nil {
		return nil, reject(diagnostic.CodeInvalidExpr, "%v", err)
	}

	d := &chain.ChainDescriptor{
		Op:    op,
		Chain: c,
		Expr:  canon,
		Site:  cs.site,
	}

	if c.Host.ID.PkgPath == cs.pkg.PkgPath {
		d.Requested = chain.RequestMember
	}

	return d, nil
}

// resolve walks expr from host, one property per segment.
func (a *Analyzer) resolve(host types.Type, expr string, want types.Type) (chain.Chain, error) {
	segs, err := chain.Segments(expr)
	if err != nil {
		return chain.Chain{}, reject(diagnostic.CodeInvalidExpr, "%v", err)
	}

	if !nillable(host) {
		return chain.Chain{}, reject(diagnostic.CodeUnsupportedHost,
			"host %s must be a pointer or an interface", TypeString(host))
	}

	hostRef, err := a.typeRef(host)
	if err != nil {
		return chain.Chain{}, reject(diagnostic.CodeUnsupportedHost, "%v", err)
	}

	c := chain.Chain{Host: hostRef}
	owner := hostRef
	cur := host
	tp := NewTypePath(hostRef.DisplayName())

	for i, name := range segs {
		last := i == len(segs)-1

		link, value, err := a.lookup(cur, owner, name, tp)
		if err != nil {
			return chain.Chain{}, err
		}

		tp = tp.Link(link)

		if !last && !nillable(value) {
			if link.ValueType.Slice {
				tp = tp.Slice()
			}

			return chain.Chain{}, reject(diagnostic.CodeUnsupportedType,
				"%s is %s; only pointers and interfaces can be followed", tp, TypeString(value))
		}

		link.Terminal = last
		if last {
			link = withSetter(cur, link, value)
		}

		c.Links = append(c.Links, link)
		owner = link.ValueType
		cur = value
	}

	if want != nil && !types.Identical(cur, want) {
		return chain.Chain{}, reject(diagnostic.CodeUnsupportedType,
			"%s yields %s, call site expects %s", tp, TypeString(cur), TypeString(want))
	}

	return c, nil
}

// lookup resolves one property of cur: a field or a getter method taking no
// arguments and returning one value.
func (a *Analyzer) lookup(cur types.Type, owner chain.TypeRef, name string, tp *TypePath) (chain.ChainLink, types.Type, error) {
	obj, _, _ := types.LookupFieldOrMethod(cur, true, declaringPackage(cur), name)

	link := chain.ChainLink{
		DeclaringType: owner,
		Name:          name,
	}

	var value types.Type

	switch o := obj.(type) {
	case *types.Var:
		link.Access = chain.LinkField
		value = o.Type()

	case *types.Func:
		sig := o.Signature()
		if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			return link, nil, reject(diagnostic.CodeUnsupportedType,
				"%s.%s is not a getter: it must take no arguments and return one value", tp, name)
		}

		link.Access = chain.LinkGetter
		value = sig.Results().At(0).Type()

	default:
		if hint, ok := match.Closest(name, propertyNames(cur)); ok {
			return link, nil, reject(diagnostic.CodeUnknownProperty,
				"%s has no property %s (did you mean %s?)", tp, name, hint)
		}

		return link, nil, reject(diagnostic.CodeUnknownProperty, "%s has no property %s", tp, name)
	}

	ref, err := a.typeRef(value)
	if err != nil {
		return link, nil, reject(diagnostic.CodeUnsupportedType, "%s.%s: %v", tp, name, err)
	}

	link.ValueType = ref
	link.Accessibility = accessOf(name, obj.Pkg())

	return link, value, nil
}

// withSetter records the setter of a leaf link: a method Set<Name> taking
// one value of the property type. The link's accessibility covers the
// setter too.
func withSetter(cur types.Type, link chain.ChainLink, value types.Type) chain.ChainLink {
	name := "Set" + link.Name
	if !ast.IsExported(link.Name) {
		name = "set" + upperFirst(link.Name)
	}

	obj, _, _ := types.LookupFieldOrMethod(cur, true, declaringPackage(cur), name)

	fn, ok := obj.(*types.Func)
	if !ok {
		return link
	}

	sig := fn.Signature()
	if sig.Params().Len() != 1 || sig.Results().Len() != 0 || !types.Identical(sig.Params().At(0).Type(), value) {
		return link
	}

	link.Setter = name
	link.Accessibility = visibility.Resolve(link.Accessibility, accessOf(name, fn.Pkg()))

	return link
}

// writable reports whether the leaf of c can be written: through a setter,
// or by assigning the field.
func writable(c chain.Chain) bool {
	leaf := c.Links[len(c.Links)-1]
	return leaf.Setter != "" || leaf.Access == chain.LinkField
}

func conversion(info *types.Info, arg ast.Expr, result types.Type) *chain.Conversion {
	if tv, ok := info.Types[arg]; ok && tv.IsNil() {
		return nil
	}

	return &chain.Conversion{
		Kind: conversionKind(result),
		Func: types.ExprString(arg),
	}
}

func constString(info *types.Info, arg ast.Expr) (string, bool) {
	tv, ok := info.Types[arg]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isReceiver reports whether arg is the receiver of the enclosing method.
func isReceiver(info *types.Info, arg ast.Expr, recv types.Object) bool {
	id, ok := ast.Unparen(arg).(*ast.Ident)
	return ok && recv != nil && info.Uses[id] == recv
}

// calleeIdent returns the identifier naming the called function, through
// explicit instantiation and package qualification.
func calleeIdent(fun ast.Expr) *ast.Ident {
	switch f := ast.Unparen(fun).(type) {
	case *ast.Ident:
		return f
	case *ast.SelectorExpr:
		return f.Sel
	case *ast.IndexExpr:
		return calleeIdent(f.X)
	case *ast.IndexListExpr:
		return calleeIdent(f.X)
	default:
		return nil
	}
}

func report(diags *diagnostic.Diagnostics, err error, host, site string) {
	var re *resolveError
	if errors.As(err, &re) {
		diags.AddError(re.code, re.msg, host, site)
		return
	}

	diags.AddError(diagnostic.CodeUnsupportedType, err.Error(), host, site)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
