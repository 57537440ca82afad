package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/wbproto/fix"
)

var ErrNoCommand = errors.New("no command configured")

// Converter turns a URDF file into a PROTO file in outDir.
type Converter interface {
	Convert(ctx context.Context, urdf, outDir string) error
}

// MeshSimplifier writes a decimated collision variant next to every mesh
// file under dir.
type MeshSimplifier interface {
	Simplify(ctx context.Context, dir string) error
}

// ProtoName returns the file name the converter gives the PROTO made from
// urdf: the extension becomes ".proto" and underscores are dropped.
func ProtoName(urdf string) string {
	base := filepath.Base(urdf)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".proto"
	return strings.ReplaceAll(base, "_", "")
}

func expand(tmpl []string, vars map[string]string) []string {
	res := make([]string, len(tmpl))
	for i, a := range tmpl {
		for k, v := range vars {
			a = strings.ReplaceAll(a, "{"+k+"}", v)
		}
		res[i] = a
	}
	return res
}

func run(ctx context.Context, tmpl []string, vars map[string]string) error {
	if len(tmpl) == 0 {
		return ErrNoCommand
	}
	args := expand(tmpl, vars)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w\n%s", strings.Join(args, " "), err, out)
	}
	return nil
}

// ExecConverter runs an external converter command.
type ExecConverter struct {
	CommandConfig
}

func (c *ExecConverter) Convert(ctx context.Context, urdf, outDir string) error {
	if err := run(ctx, c.Command, map[string]string{"input": urdf, "output": outDir}); err != nil {
		return fmt.Errorf("error converting %s: %w", urdf, err)
	}
	return nil
}

// ExecSimplifier runs an external command once per mesh file.  Files that
// already are collision meshes are skipped.  A failure on one mesh is
// logged and the remaining meshes are still processed.
type ExecSimplifier struct {
	SimplifierConfig
	Suffix     string
	Extensions []string
	Log        *slog.Logger
}

func (s *ExecSimplifier) isMesh(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(s.Extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

func (s *ExecSimplifier) Simplify(ctx context.Context, dir string) error {
	if len(s.Command) == 0 {
		return ErrNoCommand
	}
	var meshes []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !s.isMesh(p) || fix.IsCollisionName(p, s.Suffix) {
			return nil
		}
		meshes = append(meshes, p)
		return nil
	})
	if err != nil {
		return err
	}
	for _, m := range meshes {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := fix.CollisionName(m, s.Suffix)
		err := run(ctx, s.Command, map[string]string{
			"input":  m,
			"output": out,
			"faces":  strconv.Itoa(s.Faces),
		})
		if err != nil {
			s.Log.Warn("simplify", "mesh", m, "error", err)
			continue
		}
		s.Log.Info("simplify", "mesh", m, "output", out)
	}
	return nil
}
