// Command svgextrude extrudes a path from an SVG file into a triangle mesh
// and writes it as binary STL or as JSON render buffers.
//
// Usage:
//
//	svgextrude -svg logo.svg [-path-id id] [-script steps.lisp] [-config cfg.yaml] [-out mesh.stl|mesh.json]
//
// Without -out the JSON result is written to stdout.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/chazu/svgextrude/pkg/config"
	"github.com/chazu/svgextrude/pkg/logging"
	"github.com/chazu/svgextrude/pkg/mesh"
	"github.com/chazu/svgextrude/pkg/tessellate"
)

type options struct {
	svg        string
	pathID     string
	script     string
	configPath string
	out        string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("svgextrude", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.StringVar(&o.svg, "svg", "", "SVG file to read (required)")
	fs.StringVar(&o.pathID, "path-id", "", "id of the <path> element to extrude; the first path when empty")
	fs.StringVar(&o.script, "script", "", "step script file; defaults to "+DefaultScript)
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.out, "out", "", "output file, .stl or .json; JSON to stdout when empty")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if o.svg == "" {
		fmt.Fprintln(stderr, "svgextrude: -svg is required")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "svgextrude: %v\n", err)
		return 1
	}
	if o.pathID != "" {
		cfg.Outline.PathID = o.pathID
	}

	log, closer := logging.Init(cfg.LoggingOptions())
	defer closer.Close()

	if err := execute(o, cfg, stdout); err != nil {
		log.Error("build failed", "err", err)
		fmt.Fprintf(stderr, "svgextrude: %v\n", err)
		return 1
	}
	return 0
}

func execute(o options, cfg config.Config, stdout io.Writer) error {
	svg, err := os.ReadFile(o.svg)
	if err != nil {
		return err
	}
	var script string
	if o.script != "" {
		b, err := os.ReadFile(o.script)
		if err != nil {
			return err
		}
		script = string(b)
	}

	app := NewApp(cfg)
	result := app.Build(svg, script)
	if len(result.Errors) > 0 {
		msgs := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			if e.Line > 0 {
				msgs[i] = fmt.Sprintf("line %d: %s", e.Line, e.Message)
			} else {
				msgs[i] = e.Message
			}
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	merged := tessellate.Merge(result.Parts())
	written, err := write(o.out, &result, merged, stdout)
	if err != nil {
		return err
	}

	if o.out != "" {
		fmt.Fprintf(stdout, "%s: %s vertices, %s triangles, %s written to %s\n",
			partName(cfg.Outline.PathID),
			humanize.Comma(int64(merged.VertexCount())),
			humanize.Comma(int64(merged.TriangleCount())),
			humanize.Bytes(uint64(written)),
			o.out)
	}
	return nil
}

// write stores the result at path, choosing the format by extension, and
// returns the number of bytes written.
func write(path string, result *EvalResult, merged *mesh.Mesh, stdout io.Writer) (int64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		if path != "" {
			return 0, fmt.Errorf("output %q has no extension, expected .stl or .json", path)
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return 0, err
		}
		n, err := stdout.Write(append(data, '\n'))
		return int64(n), err
	case ".json":
		data, err := json.Marshal(result)
		if err != nil {
			return 0, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return 0, err
		}
		return int64(len(data)), nil
	case ".stl":
		if merged.IsEmpty() {
			return 0, errors.New("nothing to write: the outline produced no mesh")
		}
		if err := mesh.SaveSTL(path, merged); err != nil {
			return 0, err
		}
		fi, err := os.Stat(path)
		if err != nil {
			return 0, err
		}
		return fi.Size(), nil
	}
	return 0, fmt.Errorf("unsupported output format %q, expected .stl or .json", filepath.Ext(path))
}
