package main

import (
	"log/slog"

	"github.com/chazu/svgextrude/pkg/config"
	"github.com/chazu/svgextrude/pkg/engine"
	"github.com/chazu/svgextrude/pkg/extrude"
	"github.com/chazu/svgextrude/pkg/logging"
	"github.com/chazu/svgextrude/pkg/outline"
	"github.com/chazu/svgextrude/pkg/scene"
	"github.com/chazu/svgextrude/pkg/steps"
	"github.com/chazu/svgextrude/pkg/tessellate"
)

// DefaultScript sweeps the outline one unit down.
const DefaultScript = "(step (translate 0 -1 0))"

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App builds meshes from SVG documents and step scripts.
type App struct {
	engine *engine.Engine
	cache  *extrude.Cache
	cfg    config.Config
	log    *slog.Logger
}

// MeshData is the JSON-serializable mesh format written by -out file.json.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of a build.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`

	parts []*tessellate.Part
}

// Parts returns the world-space meshes behind Meshes.
func (r *EvalResult) Parts() []*tessellate.Part { return r.parts }

// NewApp creates an App using cfg.
func NewApp(cfg config.Config) *App {
	return &App{
		engine: engine.NewEngine(),
		cache:  cfg.NewCache(),
		cfg:    cfg,
		log:    logging.WithComponent("app"),
	}
}

// Build extrudes the selected path of an SVG document along the steps of
// a script. An empty script uses DefaultScript.
func (a *App) Build(svg []byte, script string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
	fail := func(msg string) EvalResult {
		result.Errors = append(result.Errors, EvalErrorData{Message: msg})
		return result
	}

	// Step 1: Evaluate the step script.
	if script == "" {
		script = DefaultScript
	}
	path, evalErrs, err := a.engine.Evaluate(script)
	if err != nil {
		a.log.Error("script evaluation failed", "err", err)
		return fail(err.Error())
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 2: Place the outline in a scene.
	oc, err := a.cfg.OutlineConfig()
	if err != nil {
		return fail(err.Error())
	}
	src := &outline.SVG{Document: svg, Config: oc}
	g, err := singleExtruderScene(partName(oc.PathID), src, path, a.cfg.ExtrudeOptions())
	if err != nil {
		return fail(err.Error())
	}

	// Step 3: Tessellate the scene into meshes.
	ts := &tessellate.Tessellator{Cache: a.cache}
	parts, err := ts.Tessellate(g)
	if err != nil {
		a.log.Error("tessellation failed", "err", err)
		return fail("tessellation failed: " + err.Error())
	}
	for _, w := range src.Warnings {
		a.log.Warn("path warning", "warning", w.String())
		result.Warnings = append(result.Warnings, EvalErrorData{Col: w.Pos, Message: w.Command + ": " + w.Message})
	}
	if len(parts) == 0 {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: "outline is degenerate, no mesh built"})
	}

	// Step 4: Convert parts to the MeshData format.
	result.parts = parts
	for i, b := range tessellate.Buffers(parts) {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: b.Vertices,
			Normals:  b.Normals,
			Indices:  b.Indices,
			PartName: b.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}

func partName(pathID string) string {
	if pathID == "" {
		return "outline"
	}
	return pathID
}

// singleExtruderScene builds a scene holding one extruder under an
// identity root.
func singleExtruderScene(name string, o outline.Outline, p steps.Path, opts extrude.Options) (*scene.Graph, error) {
	g := scene.New()
	root := &scene.Node{ID: scene.NewNodeID("root"), Kind: scene.NodeTransform, Data: scene.TransformData{}}
	ext := &scene.Node{
		ID:   scene.NewNodeID("extruder/" + name),
		Kind: scene.NodeExtruder,
		Name: name,
		Data: scene.ExtruderData{Outline: o, Path: p, Options: opts},
	}
	g.AddNode(root)
	g.AddNode(ext)
	g.AddRoot(root.ID)
	if err := g.AddChild(root.ID, ext.ID); err != nil {
		return nil, err
	}
	for _, e := range scene.Validate(g) {
		if e.Severity == scene.SeverityError {
			return nil, e
		}
	}
	return g, nil
}
