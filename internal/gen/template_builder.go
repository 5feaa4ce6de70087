package gen

import (
	"slices"
	"strings"

	"propchain/internal/chain"
	"propchain/internal/group"
	"propchain/internal/plan"
)

// templateData holds all data needed for the unit template.
type templateData struct {
	Tool             string
	PackageName      string
	Filename         string
	Imports          []importSpec
	GenerateComments bool
	Member           bool
	Receiver         string
	Paths            []pathData
	Methods          []methodData
}

// pathData is one generated path variable.
type pathData struct {
	Name   string
	Host   string
	Output string
	Keys   []string
	Links  []linkData
}

// linkData is one reactive.Ref or reactive.Value call.
type linkData struct {
	Helper string // Ref or Value
	Name   string
	Owner  string // owner type expression
	Result string // getter result type expression
	Get    string // getter body expression on o
	Set    string // setter statement on o and v, empty when read-only
}

// methodData is one selector.
type methodData struct {
	Name   string
	Host   string
	Output string
	Single bool
	Var    string
	Keys   []string
	Cases  []caseData
}

// caseData is one case of a multi-chain selector.
type caseData struct {
	Key string
	Var string
}

// buildTemplateData constructs the template data of one unit.
func (g *Generator) buildTemplateData(u *plan.GenerationUnit, pkgName string) *templateData {
	imports := newImportSet(u.PkgPath, g.getPkgName)

	data := &templateData{
		Tool:             toolName,
		PackageName:      pkgName,
		Filename:         u.Name + ".go",
		GenerateComments: g.config.GenerateComments,
		Member:           u.Kind == plan.UnitMember,
	}

	if data.Member {
		data.Receiver = imports.typeExpr(u.Host)
	}

	for i := range u.Methods {
		m := &u.Methods[i]
		host := imports.typeExpr(u.Host)
		output := imports.typeExpr(m.Output)

		md := methodData{
			Name:   m.Name,
			Host:   host,
			Output: output,
			Single: m.Plan.Kind == group.SingleChain,
		}

		for _, cv := range m.Chains {
			data.Paths = append(data.Paths, g.buildPath(cv, imports))
		}

		if md.Single {
			md.Var = m.VarFor(m.Plan.Single)
			md.Keys = m.Plan.Single.Keys
		} else {
			for _, row := range m.Plan.Table {
				md.Cases = append(md.Cases, caseData{Key: row.Key, Var: m.VarFor(row.Entry)})
			}
		}

		data.Methods = append(data.Methods, md)
	}

	data.Imports = imports.specs()

	return data
}

// buildPath renders the links of one chain.
func (g *Generator) buildPath(cv plan.ChainVar, imports *importSet) pathData {
	c := cv.Entry.Chain

	p := pathData{
		Name:   cv.Name,
		Host:   imports.typeExpr(c.HostType()),
		Output: imports.typeExpr(c.OutputType()),
		Keys:   cv.Entry.Keys,
	}

	for _, link := range c.Links {
		p.Links = append(p.Links, buildLink(link, imports))
	}

	return p
}

func buildLink(link chain.ChainLink, imports *importSet) linkData {
	ld := linkData{
		Helper: "Value",
		Name:   link.Name,
		Owner:  imports.typeExpr(link.DeclaringType),
		Result: imports.typeExpr(link.ValueType),
		Get:    "o." + link.Name,
	}

	if link.ValueType.Pointer && !link.ValueType.Slice {
		ld.Helper = "Ref"
	}

	if link.Access == chain.LinkGetter {
		ld.Get += "()"
	}

	if link.Terminal {
		switch {
		case link.Setter != "":
			ld.Set = "o." + link.Setter + "(v)"
		case link.Access == chain.LinkField:
			ld.Set = "o." + link.Name + " = v"
		}
	}

	return ld
}

// sortImports orders imports by path.
func sortImports(specs []importSpec) {
	slices.SortFunc(specs, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})
}
