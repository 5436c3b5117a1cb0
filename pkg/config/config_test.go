package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/svgextrude/pkg/outline"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svgextrude.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	oc, err := cfg.OutlineConfig()
	require.NoError(t, err)
	assert.Equal(t, outline.DefaultConfig(), oc)
	assert.NotNil(t, cfg.NewCache())
	assert.Equal(t, "info", cfg.LoggingOptions().Level)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, `
outline:
  scale: 2.5
  command_policy: " Line "
extrude:
  invert_sides: true
logging:
  format: JSON
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Outline.Normalize, "normalize keeps its default")
	assert.True(t, cfg.Outline.RequireClose)
	assert.Equal(t, 8, cfg.Outline.CurveSegments)
	assert.Equal(t, 2.5, cfg.Outline.Scale)
	assert.Equal(t, "line", cfg.Outline.CommandPolicy)
	assert.Equal(t, "json", cfg.Logging.Format)

	opts := cfg.ExtrudeOptions()
	assert.True(t, opts.InvertSides)
	assert.False(t, opts.InvertTop)

	oc, err := cfg.OutlineConfig()
	require.NoError(t, err)
	assert.Equal(t, outline.PolicyLine, oc.Policy)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "outline: [not, a, map"))
	assert.Error(t, err)

	for name, content := range map[string]string{
		"segments": "outline:\n  curve_segments: 0\n",
		"scale":    "outline:\n  scale: 0\n",
		"policy":   "outline:\n  command_policy: guess\n",
		"cache":    "cache:\n  size: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Outline.PathID = "wing"
	cfg.Extrude.InvertBottom = true
	cfg.Cache.Size = 0

	path := filepath.Join(t.TempDir(), "nested", "svgextrude.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Nil(t, got.NewCache())

	assert.Error(t, Save("", cfg))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvNormalize, "false")
	t.Setenv(EnvScale, "3")
	t.Setenv(EnvCurveSegments, "16")
	t.Setenv(EnvPathID, "outline")
	t.Setenv(EnvCommandPolicy, "REJECT")
	t.Setenv(EnvRequireClose, "no")
	t.Setenv(EnvInvertTop, "yes")
	t.Setenv(EnvCacheSize, "4")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/svgx.log")

	cfg, err := Load(writeFile(t, "outline:\n  scale: 9\n"))
	require.NoError(t, err)

	assert.False(t, cfg.Outline.Normalize)
	assert.Equal(t, 3.0, cfg.Outline.Scale, "env wins over the file")
	assert.Equal(t, 16, cfg.Outline.CurveSegments)
	assert.Equal(t, "outline", cfg.Outline.PathID)
	assert.Equal(t, "reject", cfg.Outline.CommandPolicy)
	assert.False(t, cfg.Outline.RequireClose)
	assert.True(t, cfg.Extrude.InvertTop)
	assert.Equal(t, 4, cfg.Cache.Size)

	lo := cfg.LoggingOptions()
	assert.Equal(t, "debug", lo.Level)
	assert.True(t, lo.AddSource)
	assert.Equal(t, "/tmp/svgx.log", lo.File)

	name, ok := EnvOverrideFor("outline.scale")
	assert.True(t, ok)
	assert.Equal(t, EnvScale, name)
	_, ok = EnvOverrideFor("logging.format")
	assert.False(t, ok)
	_, ok = EnvOverrideFor("nope")
	assert.False(t, ok)
}

func TestEnvOverrideIgnoresBadNumbers(t *testing.T) {
	t.Setenv(EnvScale, "big")
	t.Setenv(EnvCurveSegments, "many")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Outline.Scale)
	assert.Equal(t, 8, cfg.Outline.CurveSegments)
}
