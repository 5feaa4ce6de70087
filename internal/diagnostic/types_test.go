package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddInfo(CodeDemotedToMember, "moved", "model.A", "")
	d.AddWarning(CodeUnsupportedType, "skipped", "", "a.go:3")
	d.AddError(CodeMalformedChain, "broken", "model.A", "a.go:7")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{CodeMalformedChain, CodeUnsupportedType, CodeDemotedToMember}, d.Codes())
	assert.EqualError(t, d.Error(), "a.go:7 [model.A]: [malformed_chain] broken")
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddError(CodeNoViableUnit, "x", "", "")
	b.AddError(CodeInvalidExpr, "y", "", "")
	b.AddInfo(CodeDemotedToMember, "z", "", "")

	a.Merge(b)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "[c] m", Diagnostic{Code: "c", Message: "m"}.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}

func TestDiagnostics_BySite(t *testing.T) {
	var d Diagnostics
	d.AddInfo(CodeDemotedToMember, "late", "", "p/a.go:10")
	d.AddError(CodeInvalidExpr, "early", "", "p/a.go:9")
	d.AddWarning(CodeUnsupportedType, "nowhere", "", "")
	d.AddError(CodeUnknownProperty, "other file", "", "p/b.go:1")

	var msgs []string
	for _, diag := range d.BySite() {
		msgs = append(msgs, diag.Message)
	}

	assert.Equal(t, []string{"early", "late", "other file", "nowhere"}, msgs)
	assert.Equal(t, 4, d.Len())
	assert.Len(t, d.All(), 4)
}
