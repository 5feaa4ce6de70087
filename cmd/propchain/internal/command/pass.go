package command

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"propchain/internal/analyze"
	"propchain/internal/chain"
	"propchain/internal/diagnostic"
	"propchain/internal/plan"
)

// pass is the outcome of analyzing and planning one set of packages.
type pass struct {
	analyzer *analyze.Analyzer
	plan     *plan.Result
	diags    diagnostic.Diagnostics
}

// runPass loads patterns (the config patterns when none are given),
// extracts call sites and plans them.
func (c *CLI) runPass(patterns []string) (*pass, error) {
	if len(patterns) == 0 {
		patterns = c.Config.Patterns
	}

	log := c.Log.With().Str("pass", ulid.Make().String()).Logger()

	a, err := analyze.NewAnalyzer(log).WithDir(c.dir).WithExclude(c.Config.Exclude...)
	if err != nil {
		return nil, err
	}

	if err := a.LoadPackages(patterns...); err != nil {
		return nil, err
	}

	extracted := a.Extract()

	descriptors := make([]*chain.ChainDescriptor, 0, len(extracted.Descriptors))
	for _, d := range extracted.Descriptors {
		if c.Config.Enabled(d.Op) {
			descriptors = append(descriptors, d)
		}
	}

	p := &pass{
		analyzer: a,
		plan:     plan.NewPlanner(log).Plan(descriptors),
	}
	p.diags.Merge(extracted.Diagnostics)
	p.diags.Merge(p.plan.Diagnostics)

	c.report(&p.diags)

	if c.Config.Strict && p.diags.HasErrors() {
		return p, fmt.Errorf("strict mode: %w", p.diags.Error())
	}

	return p, nil
}

// report logs every diagnostic at its severity, in call site order.
func (c *CLI) report(diags *diagnostic.Diagnostics) {
	for _, d := range diags.BySite() {
		var ev *zerolog.Event

		switch d.Severity {
		case diagnostic.DiagnosticError:
			ev = c.Log.Error()
		case diagnostic.DiagnosticWarning:
			ev = c.Log.Warn()
		default:
			ev = c.Log.Info()
		}

		ev.Str("code", d.Code).Str("site", d.Site).Str("host", d.Host).Msg(d.Message)
	}
}
