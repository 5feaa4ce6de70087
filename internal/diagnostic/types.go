package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"propchain/internal/chain"
)

// Diagnostic codes.
const (
	CodeMalformedChain   = "malformed_chain"
	CodeInvalidExpr      = "invalid_expr"
	CodeNoViableUnit     = "no_viable_unit"
	CodeDemotedToMember  = "demoted_to_member"
	CodeGroupFailed      = "group_failed"
	CodeUnknownProperty  = "unknown_property"
	CodeNonConstantExpr  = "non_constant_expr"
	CodeUnsupportedType  = "unsupported_type"
	CodeUnsupportedHost  = "unsupported_host"
	CodeMissingArguments = "missing_arguments"
	CodeReadOnlyLeaf     = "read_only_leaf"
)

// Diagnostics holds everything one pass reported, split by severity.
// Each slice keeps the order problems were found in.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one reported problem about a call site or host.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code is one of the Code* constants.
	Code    string
	Message string
	// Host is the display name of the host type, if known.
	Host string
	// Site is "pkgPath/file.go:line", if known.
	Site string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return chain.UnknownStr
	}
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, host, site string) {
	diag := Diagnostic{Severity: sev, Code: code, Message: message, Host: host, Site: site}

	switch sev {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError records a problem that dropped a call site or group.
func (d *Diagnostics) AddError(code, message, host, site string) {
	d.add(DiagnosticError, code, message, host, site)
}

// AddWarning records a problem that did not drop anything.
func (d *Diagnostics) AddWarning(code, message, host, site string) {
	d.add(DiagnosticWarning, code, message, host, site)
}

// AddInfo records a decision worth telling the user about.
func (d *Diagnostics) AddInfo(code, message, host, site string) {
	d.add(DiagnosticInfo, code, message, host, site)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Len counts diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge appends other's diagnostics after d's.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first, each severity in the order
// it was found.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Codes returns the codes of every diagnostic, errors first.
func (d *Diagnostics) Codes() []string {
	all := d.All()

	codes := make([]string, 0, len(all))
	for _, diag := range all {
		codes = append(codes, diag.Code)
	}

	return codes
}

// BySite returns every diagnostic ordered by call site, so problems in the
// same file read top to bottom ("a.go:9" before "a.go:10"). Diagnostics
// without a site come last; ties keep severity order.
func (d *Diagnostics) BySite() []Diagnostic {
	all := d.All()

	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		switch {
		case a.Site == b.Site:
			return 0
		case a.Site == "":
			return 1
		case b.Site == "":
			return -1
		case natural.Less(a.Site, b.Site):
			return -1
		default:
			return 1
		}
	})

	return all
}

// Error folds the error diagnostics into one error, nil when there are none.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "site [host]: [code] message", leaving out what is unknown.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Site != "" {
		sb.WriteString(d.Site)
	}

	if d.Host != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprintf(&sb, "[%s]", d.Host)
	}

	if sb.Len() > 0 {
		sb.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&sb, "[%s] ", d.Code)
	}

	sb.WriteString(d.Message)

	return sb.String()
}
