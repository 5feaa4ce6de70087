package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	err := root.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "propchain "+Version+"\n", out)
}

func TestPlan(t *testing.T) {
	out, err := execute(t, "plan", "propchain/store")
	require.NoError(t, err)

	assert.Contains(t, out, "propchain/store\tOrder_")
	assert.Contains(t, out, " -> ")
}

func TestPlan_Dump(t *testing.T) {
	out, err := execute(t, "plan", "--dump", "propchain/store")
	require.NoError(t, err)

	assert.Contains(t, out, "GenerationUnit")
	assert.Contains(t, out, "Diagnostics")
}

func TestPlan_JSON(t *testing.T) {
	out, err := execute(t, "plan", "--json", "propchain/store")
	require.NoError(t, err)

	var report struct {
		Units []struct {
			Name    string
			PkgPath string
		} `json:"units"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotEmpty(t, report.Units)

	hosts := map[string]bool{}
	for _, u := range report.Units {
		assert.Equal(t, "propchain/store", u.PkgPath)
		hosts[strings.SplitN(u.Name, "_", 2)[0]] = true
	}

	assert.Equal(t, map[string]bool{"Order": true, "Summary": true}, hosts)
}

func TestPlan_DumpAndJSONExclusive(t *testing.T) {
	_, err := execute(t, "plan", "--json", "--dump", "propchain/store")
	require.Error(t, err)
}

func TestPlan_Strict(t *testing.T) {
	_, err := execute(t, "plan", "propchain/internal/analyze/fixtures/broken")
	require.NoError(t, err)

	_, err = execute(t, "plan", "--strict", "propchain/internal/analyze/fixtures/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestGen_OutputDir(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "Gone_WhenChanged.partial.g.go")
	require.NoError(t, os.WriteFile(stale, []byte("package store\n"), 0o644))

	out, err := execute(t, "gen", "--out", dir, "propchain/store")
	require.NoError(t, err)
	assert.Contains(t, out, "generated ")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		name := e.Name()
		assert.True(t,
			strings.HasSuffix(name, ".partial.g.go") || strings.HasSuffix(name, ".extensions.g.go"),
			name)
		assert.NotEqual(t, "Gone_WhenChanged.partial.g.go", name)
	}
}

func TestGen_KeepStale(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "Gone_WhenChanged.partial.g.go")
	require.NoError(t, os.WriteFile(stale, []byte("package store\n"), 0o644))

	_, err := execute(t, "gen", "--out", dir, "--keep-stale", "propchain/store")
	require.NoError(t, err)
	assert.FileExists(t, stale)
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "propchain.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\noperations: [WhenChanging]\n"), 0o644))

	var out bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "--log-level", "bogus", "version"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}

func TestUnknownOperationInConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "propchain.yaml")
	require.NoError(t, os.WriteFile(path, []byte("operations: [Nope]\n"), 0o644))

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "version"})

	require.Error(t, root.Execute())
}
