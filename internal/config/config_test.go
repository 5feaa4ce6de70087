package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propchain/internal/chain"
)

func TestParse(t *testing.T) {
	yaml := `
patterns:
  - ./store/...
  - ./warehouse/...
exclude: ["**/*_mock.go"]
output_dir: gen
operations: [WhenChanged, Bind]
log_level: debug
strict: true
comments: false
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, []string{"./store/...", "./warehouse/..."}, cfg.Patterns)
	assert.Equal(t, []string{"**/*_mock.go"}, cfg.Exclude)
	assert.Equal(t, "gen", cfg.OutputDir)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.GenerateComments())
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())

	assert.True(t, cfg.Enabled(chain.OpWhenChanged))
	assert.True(t, cfg.Enabled(chain.OpBind))
	assert.False(t, cfg.Enabled(chain.OpWhenChanging))
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, []string{"./..."}, cfg.Patterns)
	assert.Empty(t, cfg.OutputDir)
	assert.False(t, cfg.Strict)
	assert.True(t, cfg.GenerateComments())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())

	for _, op := range chain.Operations {
		assert.True(t, cfg.Enabled(op), op.String())
	}

	assert.Equal(t, cfg, Default())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "patterns: [", "failed to parse config YAML"},
		{"unknown operation", "operations: [WhenMoved]", `unknown operation "WhenMoved"`},
		{"bad level", "log_level: loud", `invalid log_level "loud"`},
		{"bad exclude", "exclude: ['a/[']", `invalid exclude pattern "a/["`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("patterns: [./app]\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./app"}, cfg.Patterns)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Operations = []string{"WhenChanging"}
	cfg.Strict = true

	data, err := Marshal(cfg)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
