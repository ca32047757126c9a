// Package generator selects the renderer for a target, works out where its
// output goes and writes it, or hands the content back for stdout.
package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/othellodsl/othelloc/game"
)

// ErrDestinationConflict is returned by GenerateAll when two targets would
// be written to the same file.
var ErrDestinationConflict = errors.New("targets share a destination")

// Options mirrors the generate command line.
type Options struct {
	Target  string
	OutPath string
	Stdout  bool
}

// Result describes what Generate did. FilePath is set when a file was
// written; Stdout and Content are set when output was requested on stdout.
type Result struct {
	Target   string
	FilePath string
	Stdout   bool
	Content  string
}

// Generator writes through an afero filesystem so callers can substitute
// an in-memory one.
type Generator struct {
	fs afero.Fs
}

func New(fsys afero.Fs) *Generator {
	return &Generator{fs: fsys}
}

var osGenerator = New(afero.NewOsFs())

// Generate runs Generator.Generate on the OS filesystem.
func Generate(g *game.Game, sourcePath string, opts Options) (*Result, error) {
	return osGenerator.Generate(g, sourcePath, opts)
}

// GenerateAll runs Generator.GenerateAll on the OS filesystem.
func GenerateAll(ctx context.Context, g *game.Game, sourcePath string, targets []string, opts Options) ([]*Result, error) {
	return osGenerator.GenerateAll(ctx, g, sourcePath, targets, opts)
}

// Render looks up the target by name and renders the model with it.
func Render(g *game.Game, targetName string) (string, error) {
	t, err := ParseTarget(targetName)
	if err != nil {
		return "", err
	}
	return t.render(g)
}

// Generate renders g for opts.Target. The output is fully rendered before
// any I/O. With opts.Stdout the content is returned and the filesystem is
// not touched at all; otherwise the destination is resolved, its parent
// directories created and the content written in one call.
func (gen *Generator) Generate(g *game.Game, sourcePath string, opts Options) (*Result, error) {
	t, err := ParseTarget(opts.Target)
	if err != nil {
		return nil, err
	}
	content, err := t.render(g)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("target", t.Name()).Int("bytes", len(content)).Msg("rendered")

	if opts.Stdout {
		return &Result{Target: t.Name(), Stdout: true, Content: content}, nil
	}
	dest := ResolveOutPath(gen.fs, sourcePath, opts.OutPath, t)
	if err := gen.write(dest, content); err != nil {
		return nil, err
	}
	return &Result{Target: t.Name(), FilePath: dest}, nil
}

func (gen *Generator) write(dest, content string) error {
	if err := gen.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if err := afero.WriteFile(gen.fs, dest, []byte(content), 0o644); err != nil {
		return err
	}
	log.Debug().Str("path", dest).Int("bytes", len(content)).Msg("wrote-output")
	return nil
}

// GenerateAll generates several targets concurrently with the same out
// path and stdout settings. Results come back in the order of targets.
// Every target name is checked, and destinations are checked to be
// distinct, before anything is rendered. Every target is rendered before
// anything is written, so a failed run leaves no output behind.
func (gen *Generator) GenerateAll(ctx context.Context, g *game.Game, sourcePath string,
	targets []string, opts Options) ([]*Result, error) {

	type job struct {
		t       Target
		dest    string
		content string
	}
	jobs := make([]job, len(targets))
	seen := map[string]string{}
	for i, name := range targets {
		t, err := ParseTarget(name)
		if err != nil {
			return nil, err
		}
		if r, ok := t.(reservedTarget); ok {
			return nil, r.notImplemented()
		}
		jobs[i].t = t
		if opts.Stdout {
			continue
		}
		dest := ResolveOutPath(gen.fs, sourcePath, opts.OutPath, t)
		if other, ok := seen[dest]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrDestinationConflict, other, name, dest)
		}
		seen[dest] = name
		jobs[i].dest = dest
	}

	eg, ectx := errgroup.WithContext(ctx)
	for i := range jobs {
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			content, err := jobs[i].t.render(g)
			if err != nil {
				return err
			}
			log.Debug().Str("target", jobs[i].t.Name()).Int("bytes", len(content)).Msg("rendered")
			jobs[i].content = content
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(jobs))
	if opts.Stdout {
		for i, j := range jobs {
			results[i] = &Result{Target: j.t.Name(), Stdout: true, Content: j.content}
		}
		return results, nil
	}

	eg, ectx = errgroup.WithContext(ctx)
	for i := range jobs {
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			if err := gen.write(jobs[i].dest, jobs[i].content); err != nil {
				return err
			}
			results[i] = &Result{Target: jobs[i].t.Name(), FilePath: jobs[i].dest}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
