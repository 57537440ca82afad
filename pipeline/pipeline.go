// Package pipeline turns a robot description directory into a patched
// PROTO file.
//
// A robot directory holds urdf/<name>.urdf, meshes/ and optionally
// textures/.  Run copies the meshes and textures next to the output,
// writes collision variants of the meshes, converts the URDF, rewrites the
// mesh urls to the copied meshes and applies the configured edit passes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/fix"
	"github.com/signadot/wbproto/protofile"
)

var ErrNoURDF = errors.New("no urdf file")

type Pipeline struct {
	Config     *Config
	Converter  Converter
	Simplifier MeshSimplifier
	Log        *slog.Logger
}

// New returns a pipeline using the external commands of cfg.  The
// simplifier is left unset when no command is configured.
func New(cfg *Config, log *slog.Logger) *Pipeline {
	p := &Pipeline{
		Config:    cfg,
		Converter: &ExecConverter{CommandConfig: cfg.Converter},
		Log:       log,
	}
	if len(cfg.Simplifier.Command) != 0 {
		p.Simplifier = &ExecSimplifier{
			SimplifierConfig: cfg.Simplifier,
			Suffix:           cfg.Collision.Suffix,
			Extensions:       cfg.Collision.Extensions,
			Log:              log,
		}
	}
	return p
}

type Result struct {
	Proto   string
	Saved   bool
	Reports []*fix.Report
}

// FindURDF returns the first urdf file in robotDir/urdf.
func FindURDF(robotDir string) (string, error) {
	ms, err := filepath.Glob(filepath.Join(robotDir, "urdf", "*.urdf"))
	if err != nil {
		return "", err
	}
	if len(ms) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoURDF, filepath.Join(robotDir, "urdf"))
	}
	sort.Strings(ms)
	return ms[0], nil
}

func (p *Pipeline) Run(ctx context.Context, robotDir, outDir string) (*Result, error) {
	robotDir, err := filepath.Abs(robotDir)
	if err != nil {
		return nil, err
	}
	urdf, err := FindURDF(robotDir)
	if err != nil {
		return nil, err
	}
	folder := filepath.Base(robotDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	meshDir := filepath.Join(robotDir, "meshes")
	outMeshes := filepath.Join(outDir, "meshes_"+folder)
	if err := copyDir(meshDir, outMeshes); err != nil {
		p.Log.Warn("copy meshes", "error", err)
	}
	if err := copyDir(filepath.Join(robotDir, "textures"), filepath.Join(outDir, "textures_"+folder)); err != nil {
		p.Log.Warn("copy textures", "error", err)
	}
	if p.Simplifier != nil {
		if err := p.Simplifier.Simplify(ctx, outMeshes); err != nil {
			return nil, fmt.Errorf("error simplifying meshes: %w", err)
		}
	}
	if err := p.Converter.Convert(ctx, urdf, outDir); err != nil {
		return nil, err
	}
	res := &Result{Proto: filepath.Join(outDir, ProtoName(urdf))}
	doc, err := protofile.Load(res.Proto)
	if err != nil {
		return nil, err
	}
	var passes []fix.Pass
	if p.Config.Passes.MeshURL {
		passes = append(passes, &fix.MeshURL{MeshDir: meshDir, RelDir: "./meshes_" + folder})
	}
	passes = append(passes, p.Config.EnabledPasses()...)
	SetDir(passes, outDir)
	res.Reports, err = fix.Run(doc, p.Log, passes...)
	if err != nil {
		return nil, err
	}
	res.Saved, err = protofile.Save(doc, res.Proto, encode.EncodeIndent(p.Config.Encode.Indent))
	if err != nil {
		return nil, err
	}
	p.Log.Info("converted", "proto", res.Proto, "saved", res.Saved)
	return res, nil
}
