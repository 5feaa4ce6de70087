package plan

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"propchain/internal/chain"
	"propchain/internal/common"
	"propchain/internal/group"
	"propchain/internal/visibility"
)

// UnitKind is the surface a generation unit lives on.
type UnitKind int

const (
	// UnitMember - attached to the host type, usable at any accessibility.
	UnitMember UnitKind = iota
	// UnitExtension - detached helpers, only for fully public chains.
	UnitExtension
)

// String returns the kind as used in artifact names.
func (k UnitKind) String() string {
	switch k {
	case UnitMember:
		return "partial"
	case UnitExtension:
		return "extensions"
	default:
		return chain.UnknownStr
	}
}

// ChainVar names the generated path variable of one chain.
type ChainVar struct {
	Name  string
	Entry *group.Entry
}

// Method is one generated entry point serving one output type.
type Method struct {
	// Name is the Go identifier of the method or function.
	Name string
	// Output is the output type of every chain behind the method.
	Output chain.TypeRef
	// Plan is the single-chain or table plan of the output group.
	Plan group.MethodPlan
	// Accessibility is the resolved accessibility of the method.
	Accessibility chain.Accessibility
	// Chains lists the path variable of each distinct chain.
	Chains []ChainVar
}

// VarFor returns the path variable name of an entry.
func (m *Method) VarFor(e *group.Entry) string {
	for _, cv := range m.Chains {
		if cv.Entry == e {
			return cv.Name
		}
	}

	return ""
}

// GenerationUnit is one artifact to emit. Units are immutable once the
// planner returns them.
type GenerationUnit struct {
	// Name is the unique, deterministic artifact name.
	Name string
	// Kind is member or extension.
	Kind UnitKind
	// Host is the owning type.
	Host chain.TypeRef
	// PkgPath is the package the artifact is emitted into.
	PkgPath string
	// Op is the operation the unit serves.
	Op chain.Operation
	// Accessibility is the declared accessibility of the surface.
	Accessibility chain.Accessibility
	// Methods are the entry points, one per output type, in output order.
	Methods []Method
}

// ArtifactName returns "{host}_{op}.{kind}.g".
func ArtifactName(host chain.TypeRef, op chain.Operation, kind UnitKind) string {
	return artifactName(host.DisplayName(), op, kind)
}

func artifactName(hostLabel string, op chain.Operation, kind UnitKind) string {
	return fmt.Sprintf("%s_%s.%s.g", hostLabel, op, kind)
}

// MethodName returns the identifier of a method serving output for op.
// Member methods for non-public groups are unexported.
func MethodName(op chain.Operation, host, output chain.TypeRef, kind UnitKind, exported bool) string {
	return methodName(op, hostPart(host.DisplayName(), kind), "", output, exported)
}

// methodName assembles op, host fragment, output qualifier and output.
// outQual is empty unless two outputs of a unit share a display name.
func methodName(op chain.Operation, host, outQual string, output chain.TypeRef, exported bool) string {
	var sb strings.Builder

	sb.WriteString(op.String())
	sb.WriteString(host)

	if output.Pointer {
		sb.WriteString("Ptr")
	}

	sb.WriteString(outQual)
	sb.WriteString(identPart(output.DisplayName()))

	if output.Slice {
		sb.WriteString("Slice")
	}

	name := sb.String()
	if !exported {
		name = lowerFirst(name)
	}

	return name
}

// hostPart is the host fragment of a method name; only detached
// extension functions carry it.
func hostPart(hostLabel string, kind UnitKind) string {
	if kind != UnitExtension {
		return ""
	}

	return identPart(hostLabel)
}

// qualifiers widen a name step by step: nothing, the package alias, the
// full package path.
var qualifiers = []func(pkgPath string) string{
	func(string) string { return "" },
	common.PkgAlias,
	func(pkgPath string) string { return pkgPath },
}

// hostLabel returns the host display name qualified at level.
func hostLabel(host chain.TypeRef, level int) string {
	q := qualifiers[level](host.ID.PkgPath)
	if q == "" {
		return host.DisplayName()
	}

	return strings.ReplaceAll(q, "/", "_") + "." + host.DisplayName()
}

// assignMethodNames names every method of u. Methods whose outputs share
// a display name are qualified by the output package until all differ.
func assignMethodNames(u *GenerationUnit, host string) {
	level := make([]int, len(u.Methods))

	for {
		byName := make(map[string][]int, len(u.Methods))

		for i := range u.Methods {
			m := &u.Methods[i]
			outQual := identPart(qualifiers[level[i]](m.Output.ID.PkgPath))
			m.Name = methodName(u.Op, host, outQual, m.Output, visibility.Exposable(m.Accessibility))
			byName[m.Name] = append(byName[m.Name], i)
		}

		if !widen(byName, level) {
			return
		}
	}
}

// widen bumps the qualifier level of every index in a clashing set and
// reports whether anything changed.
func widen(clashes map[string][]int, level []int) bool {
	changed := false

	for _, idx := range clashes {
		if len(idx) < 2 {
			continue
		}

		for _, i := range idx {
			if level[i] < len(qualifiers)-1 {
				level[i]++
				changed = true
			}
		}
	}

	return changed
}

// disambiguate qualifies units that would land in the same package under
// the same artifact name, which happens for same-named hosts declared in
// different packages. Extension function names are requalified too since
// they share the package scope.
func disambiguate(units []GenerationUnit) {
	level := make([]int, len(units))

	for {
		byName := make(map[string][]int, len(units))

		for i := range units {
			key := units[i].PkgPath + " " + units[i].Name
			byName[key] = append(byName[key], i)
		}

		before := slices.Clone(level)
		if !widen(byName, level) {
			return
		}

		for i := range units {
			if level[i] == before[i] {
				continue
			}

			u := &units[i]
			label := hostLabel(u.Host, level[i])
			u.Name = artifactName(label, u.Op, u.Kind)

			if u.Kind == UnitExtension {
				assignMethodNames(u, hostPart(label, u.Kind))
			}
		}
	}
}

// identPart turns a display name into an exported identifier fragment.
func identPart(s string) string {
	var sb strings.Builder

	upper := true

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}

		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}

	return s
}
