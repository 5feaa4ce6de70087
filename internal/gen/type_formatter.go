package gen

import (
	"strconv"
	"strings"

	"propchain/internal/chain"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one file and hands out unique
// package qualifiers.
type importSet struct {
	self    string                // package path being generated into
	names   func(string) string   // package path -> package name
	byPath  map[string]importSpec // chosen imports
	byAlias map[string]string     // alias -> package path
}

func newImportSet(self string, names func(string) string) *importSet {
	s := &importSet{
		self:    self,
		names:   names,
		byPath:  make(map[string]importSpec),
		byAlias: make(map[string]string),
	}

	s.byAlias[runtimeAlias] = runtimePkg

	return s
}

// qualifier returns the name to qualify identifiers of pkgPath with, or ""
// for the current package and builtins.
func (s *importSet) qualifier(pkgPath string) string {
	if pkgPath == "" || pkgPath == s.self {
		return ""
	}

	if spec, ok := s.byPath[pkgPath]; ok {
		return spec.Alias
	}

	base := s.names(pkgPath)
	alias := base

	for i := 2; ; i++ {
		if owner, taken := s.byAlias[alias]; !taken || owner == pkgPath {
			break
		}

		alias = base + strconv.Itoa(i)
	}

	s.byAlias[alias] = pkgPath

	s.byPath[pkgPath] = importSpec{Alias: alias, Path: pkgPath}

	return alias
}

// specs returns the imports sorted by path, aliases only where needed.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath)+1)
	out = append(out, importSpec{Path: runtimePkg})

	for _, spec := range s.byPath {
		if spec.Alias == s.names(spec.Path) {
			spec.Alias = ""
		}

		out = append(out, spec)
	}

	sortImports(out)

	return out
}

// typeExpr returns the Go type expression of t (e.g., "*store.Order",
// "[]int") as seen from the current package.
func (s *importSet) typeExpr(t chain.TypeRef) string {
	var sb strings.Builder

	if t.Slice {
		sb.WriteString("[]")
	}

	if t.Pointer {
		sb.WriteString("*")
	}

	if q := s.qualifier(t.ID.PkgPath); q != "" {
		sb.WriteString(q)
		sb.WriteString(".")
	}

	sb.WriteString(t.ID.Name)

	return sb.String()
}
