package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gojsonschema "github.com/xeipuuv/gojsonschema"

	"github.com/chazu/svgextrude/pkg/config"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20">
  <path id="square" d="M 0 0 L 10 0 L 10 10 L 0 10 Z"/>
  <g>
    <path id="notch" d="M 0 0 L 4 0 L 4 4 L 2 2 L 0 4 Z"/>
    <path id="line" d="M 0 0 L 4 0 Z"/>
    <path id="arc" d="M 0 0 L 4 0 A 4 4 0 4 Z"/>
  </g>
</svg>`

func appWithPath(t *testing.T, pathID string) *App {
	t.Helper()
	cfg := config.Defaults()
	cfg.Outline.PathID = pathID
	return NewApp(cfg)
}

func requireNoErrors(t *testing.T, result EvalResult) {
	t.Helper()
	for _, e := range result.Errors {
		t.Errorf("build error (line %d): %s", e.Line, e.Message)
	}
	if len(result.Errors) > 0 {
		t.FailNow()
	}
}

// TestE2EDefaultScript exercises the full pipeline: SVG document -> outline
// -> script -> scene -> tessellate -> buffers.
func TestE2EDefaultScript(t *testing.T) {
	result := NewApp(config.Defaults()).Build([]byte(testSVG), "")
	requireNoErrors(t, result)

	require.Len(t, result.Meshes, 1)
	m := result.Meshes[0]
	assert.Equal(t, "outline", m.PartName)
	assert.Equal(t, colorPalette[0], m.Color)
	assert.Len(t, m.Vertices, 3*24)
	assert.Len(t, m.Normals, 3*24)
	assert.Len(t, m.Indices, 3*12)
	assert.Empty(t, result.Warnings)

	require.Len(t, result.Parts(), 1)
	b := result.Parts()[0].Mesh.Bounds()
	assert.InDelta(t, -1, b.Min.X, 1e-9, "normalized to a unit half-extent")
	assert.InDelta(t, 1, b.Max.X, 1e-9)
	assert.InDelta(t, -1, b.Min.Y, 1e-9, "one step down")
}

func TestE2EScriptAndPathID(t *testing.T) {
	result := appWithPath(t, "notch").Build([]byte(testSVG), `
; three even slices, then a taper
(def slice (translate 0 -0.5 0))
(step slice :times 3)
(step (scale 0.5))
`)
	requireNoErrors(t, result)

	require.Len(t, result.Meshes, 1)
	m := result.Meshes[0]
	assert.Equal(t, "notch", m.PartName)
	// 5 points: 3 cap triangles each, 5 quads per step.
	assert.Len(t, m.Indices, 3*(3+3+4*5*2))
	assert.Len(t, m.Vertices, 3*(5+5+4*5*4))
}

func TestE2ESyntaxError(t *testing.T) {
	result := NewApp(config.Defaults()).Build([]byte(testSVG), "(step (translate 0 -1 0)\n(step")
	require.NotEmpty(t, result.Errors)
	assert.NotEmpty(t, result.Errors[0].Message)
	assert.Empty(t, result.Meshes)
	assert.NotNil(t, result.Meshes, "JSON should serialize as [] not null")
}

func TestE2EBuiltinError(t *testing.T) {
	result := NewApp(config.Defaults()).Build([]byte(testSVG), "(step (rotate :w 1))")
	require.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Meshes)
}

func TestE2EMissingPath(t *testing.T) {
	result := appWithPath(t, "nope").Build([]byte(testSVG), "")
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "tessellation failed")
}

func TestE2EDegenerateOutline(t *testing.T) {
	result := appWithPath(t, "line").Build([]byte(testSVG), "")
	requireNoErrors(t, result)
	assert.Empty(t, result.Meshes)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "degenerate")
}

func TestE2EUnknownCommandWarns(t *testing.T) {
	result := appWithPath(t, "arc").Build([]byte(testSVG), "")
	requireNoErrors(t, result)
	require.Len(t, result.Meshes, 1)
	require.NotEmpty(t, result.Warnings)
	assert.True(t, strings.HasPrefix(result.Warnings[0].Message, "A"), "got %q", result.Warnings[0].Message)
}

func TestE2ERejectPolicy(t *testing.T) {
	cfg := config.Defaults()
	cfg.Outline.PathID = "arc"
	cfg.Outline.CommandPolicy = "reject"
	result := NewApp(cfg).Build([]byte(testSVG), "")
	assert.NotEmpty(t, result.Errors)
}

func TestE2ERapidBuilds(t *testing.T) {
	// Sequential calls on one App share its engine and cache.
	app := NewApp(config.Defaults())
	scripts := []string{
		"(step (translate 0 -1 0))",
		"(step",
		"",
		";; just a comment",
		"(undefined-func 1 2 3)",
		"(step (translate 0 -1 0))",
	}
	for i, s := range scripts {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on script %q: %v", i, s, r)
				}
			}()
			_ = app.Build([]byte(testSVG), s)
		}()
	}

	hits, misses := app.cache.Stats()
	assert.Equal(t, int64(2), hits, "the first and last scripts, and the default one, share a build")
	assert.Equal(t, int64(2), misses)
}

func TestResultConformsToSchema(t *testing.T) {
	result := appWithPath(t, "notch").Build([]byte(testSVG), "(step (translate 0 -1 0) :times 2)")
	requireNoErrors(t, result)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	schemaBytes, err := os.ReadFile(filepath.Join("..", "..", "docs", "mesh-result.schema.json"))
	require.NoError(t, err)

	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaBytes), gojsonschema.NewBytesLoader(data))
	require.NoError(t, err)
	for _, e := range res.Errors() {
		t.Logf("schema error: %s", e)
	}
	assert.True(t, res.Valid(), "result does not conform to schema")
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "in.svg")
	require.NoError(t, os.WriteFile(svgPath, []byte(testSVG), 0o644))
	scriptPath := filepath.Join(dir, "steps.lisp")
	require.NoError(t, os.WriteFile(scriptPath, []byte("(step (translate 0 -2 0))"), 0o644))

	var stdout, stderr bytes.Buffer
	stlPath := filepath.Join(dir, "out.stl")
	code := run([]string{"-svg", svgPath, "-path-id", "square", "-script", scriptPath, "-out", stlPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	fi, err := os.Stat(stlPath)
	require.NoError(t, err)
	assert.Equal(t, int64(84+50*12), fi.Size())
	assert.Contains(t, stdout.String(), "square: 24 vertices, 12 triangles")

	stdout.Reset()
	jsonPath := filepath.Join(dir, "out.json")
	code = run([]string{"-svg", svgPath, "-out", jsonPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	var decoded EvalResult
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Meshes, 1)

	stdout.Reset()
	code = run([]string{"-svg", svgPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.True(t, json.Valid(stdout.Bytes()))
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "in.svg")
	require.NoError(t, os.WriteFile(svgPath, []byte(testSVG), 0o644))

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing svg flag", nil, 2},
		{"unknown flag", []string{"-bogus"}, 2},
		{"unreadable svg", []string{"-svg", filepath.Join(dir, "missing.svg")}, 1},
		{"bad format", []string{"-svg", svgPath, "-out", filepath.Join(dir, "out.obj")}, 1},
		{"no extension", []string{"-svg", svgPath, "-out", filepath.Join(dir, "out")}, 1},
		{"degenerate stl", []string{"-svg", svgPath, "-path-id", "line", "-out", filepath.Join(dir, "line.stl")}, 1},
		{"missing config", []string{"-svg", svgPath, "-config", filepath.Join(dir, "none.yaml")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
		})
	}
}
