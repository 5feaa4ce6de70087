package plan

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"propchain/internal/chain"
	"propchain/internal/diagnostic"
	"propchain/internal/group"
	"propchain/internal/visibility"
)

// pathVarPrefix prefixes the synthetic path variable names of a pass.
const pathVarPrefix = "propchainPath"

// Result is the output of one planning pass.
type Result struct {
	// Units are the artifacts to emit, sorted by package and name.
	Units []GenerationUnit
	// Diagnostics contains the problems found; affected call sites were dropped.
	Diagnostics diagnostic.Diagnostics
}

// Planner turns chain descriptors into generation units.
type Planner struct {
	log zerolog.Logger
}

// NewPlanner creates a Planner logging to logger.
func NewPlanner(logger zerolog.Logger) *Planner {
	return &Planner{log: logger}
}

// Plan runs one generation pass over every operation present in descriptors.
// A call site that cannot be planned is reported and skipped; it never
// aborts the pass.
func (p *Planner) Plan(descriptors []*chain.ChainDescriptor) *Result {
	res := &Result{}
	names := NewNameGen(pathVarPrefix)

	valid := p.validate(descriptors, &res.Diagnostics)

	for _, op := range chain.Operations {
		groups, err := group.GroupAll(op, valid)
		if err != nil {
			res.Diagnostics.AddError(diagnostic.CodeGroupFailed, err.Error(), "", op.String())
			continue
		}

		for _, g := range groups {
			res.Units = append(res.Units, p.planHost(g, names, &res.Diagnostics)...)
		}
	}

	disambiguate(res.Units)

	slices.SortFunc(res.Units, func(a, b GenerationUnit) int {
		if c := strings.Compare(a.PkgPath, b.PkgPath); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	p.log.Debug().
		Int("descriptors", len(descriptors)).
		Int("units", len(res.Units)).
		Int("paths", names.Issued()).
		Int("errors", len(res.Diagnostics.Errors)).
		Msg("planning pass finished")

	return res
}

// validate drops malformed descriptors and canonicalizes expressions.
func (p *Planner) validate(descriptors []*chain.ChainDescriptor, diags *diagnostic.Diagnostics) []*chain.ChainDescriptor {
	var valid []*chain.ChainDescriptor

	for _, d := range descriptors {
		if d == nil {
			continue
		}

		host := d.HostType().String()

		if err := d.Validate(); err != nil {
			diags.AddError(diagnostic.CodeMalformedChain, err.Error(), host, d.Site.String())
			p.log.Warn().Err(err).Str("site", d.Site.String()).Msg("dropping malformed chain")

			continue
		}

		cd, err := canonicalize(d)
		if err != nil {
			diags.AddError(diagnostic.CodeInvalidExpr, err.Error(), host, d.Site.String())
			continue
		}

		valid = append(valid, cd)
	}

	return valid
}

// canonicalize returns a copy of d whose expressions (and its siblings')
// are in canonical form.
func canonicalize(d *chain.ChainDescriptor) (*chain.ChainDescriptor, error) {
	cd := *d

	if cd.Expr == "" {
		cd.Expr = cd.Chain.Path()
	} else {
		expr, err := chain.CanonicalExpr(cd.Expr)
		if err != nil {
			return nil, err
		}

		cd.Expr = expr
	}

	cd.Siblings = make([]*chain.ChainDescriptor, 0, len(d.Siblings))

	for _, sib := range d.Siblings {
		cs, err := canonicalize(sib)
		if err != nil {
			return nil, err
		}

		cd.Siblings = append(cd.Siblings, cs)
	}

	return &cd, nil
}

// planHost partitions one host's output groups into at most one member and
// at most one extension unit.
func (p *Planner) planHost(g *group.InputTypeGroup, names *NameGen, diags *diagnostic.Diagnostics) []GenerationUnit {
	var members, extensions []*group.OutputTypeGroup

	var extPkg string

	for _, out := range g.Outputs {
		acc := resolveGroup(out)
		needsMember := out.RequiresNonPublicAccess() || !visibility.Exposable(acc)

		if !needsMember {
			if !g.Host.Local {
				extPkg = minSitePackage(extPkg, out)
			}

			extensions = append(extensions, out)

			continue
		}

		if reason := memberBlocker(g.Host); reason != "" {
			for _, e := range out.Entries {
				for _, d := range e.Descriptors {
					diags.AddError(diagnostic.CodeNoViableUnit,
						"chain needs non-public access but host "+g.Host.String()+" "+reason,
						g.Host.String(), d.Site.String())
				}
			}

			continue
		}

		for _, e := range out.Entries {
			for _, d := range e.Descriptors {
				if d.Requested == chain.RequestExtension {
					diags.AddInfo(diagnostic.CodeDemotedToMember,
						"chain "+d.Expr+" is not publicly visible ("+acc.String()+"), generated as member",
						g.Host.String(), d.Site.String())
				}
			}
		}

		members = append(members, out)
	}

	p.log.Debug().
		Str("host", g.Host.String()).
		Str("op", g.Op.String()).
		Int("outputs", len(g.Outputs)).
		Int("member", len(members)).
		Int("extension", len(extensions)).
		Msg("partitioned host")

	var units []GenerationUnit

	if len(members) > 0 {
		units = append(units, buildUnit(g, UnitMember, g.PkgPath, members, names))
	}

	if extPkg == "" {
		extPkg = g.PkgPath
	}

	if len(extensions) > 0 {
		units = append(units, buildUnit(g, UnitExtension, extPkg, extensions, names))
	}

	return units
}

// memberBlocker tells why methods cannot be attached to host, or returns
// "" when they can.
func memberBlocker(host chain.TypeRef) string {
	switch {
	case !host.Local:
		return "is not declared in a generated package"
	case host.Interface:
		return "is an interface"
	default:
		return ""
	}
}

// minSitePackage picks the package for extensions of a host declared
// elsewhere: the smallest call-site package seen so far.
func minSitePackage(current string, out *group.OutputTypeGroup) string {
	for _, e := range out.Entries {
		for _, d := range e.Descriptors {
			if d.Site.PkgPath != "" && (current == "" || d.Site.PkgPath < current) {
				current = d.Site.PkgPath
			}
		}
	}

	return current
}

// resolveGroup folds the accessibility of every chain in the group.
func resolveGroup(out *group.OutputTypeGroup) chain.Accessibility {
	acc := chain.AccessPublic

	for _, e := range out.Entries {
		for _, d := range e.Descriptors {
			acc = visibility.Resolve(acc, visibility.ResolveChain(d))
		}
	}

	return acc
}

func buildUnit(
	g *group.InputTypeGroup,
	kind UnitKind,
	pkgPath string,
	outputs []*group.OutputTypeGroup,
	names *NameGen,
) GenerationUnit {
	unit := GenerationUnit{
		Name:          ArtifactName(g.Host, g.Op, kind),
		Kind:          kind,
		Host:          g.Host,
		PkgPath:       pkgPath,
		Op:            g.Op,
		Accessibility: chain.AccessPublic,
	}

	if kind == UnitMember {
		unit.Accessibility = g.Accessibility
	}

	for _, out := range outputs {
		acc := chain.AccessPublic
		if kind == UnitMember {
			acc = resolveGroup(out)
		}

		m := Method{
			Output:        out.OutputType,
			Plan:          out.Plan,
			Accessibility: acc,
		}

		for _, e := range out.Plan.Entries() {
			m.Chains = append(m.Chains, ChainVar{Name: names.Next(), Entry: e})
		}

		unit.Methods = append(unit.Methods, m)
	}

	assignMethodNames(&unit, hostPart(g.Host.DisplayName(), kind))

	return unit
}
