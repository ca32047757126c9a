package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/othellodsl/othelloc/game"
	"github.com/othellodsl/othelloc/render"
)

var (
	// ErrUnknownTarget is returned for a target name outside Targets().
	ErrUnknownTarget = errors.New("unknown target")
	// ErrTargetNotImplemented is returned for a recognized target whose
	// renderer does not exist yet.
	ErrTargetNotImplemented = errors.New("target not implemented")
)

// Target is one output representation. The set of targets is closed: the
// interface has an unexported method, so every implementation lives in this
// file and must supply each method to compile.
type Target interface {
	// Name is the symbolic name used on the command line.
	Name() string
	// Ext is the extension of files written for this target, without dot.
	Ext() string
	// DefaultFileName is the file name used when the destination is a
	// directory, given the source file name without extension.
	DefaultFileName(sourceBase string) string
	render(g *game.Game) (string, error)
}

// asciiTarget always writes ascii.txt, whatever the source is called. Every
// other target derives its file name from the source.
type asciiTarget struct{}

func (asciiTarget) Name() string                  { return "ascii" }
func (asciiTarget) Ext() string                   { return "txt" }
func (asciiTarget) DefaultFileName(string) string { return "ascii.txt" }
func (asciiTarget) render(g *game.Game) (string, error) {
	return render.ASCII.Render(g)
}

type htmlTarget struct{}

func (htmlTarget) Name() string { return "html" }
func (htmlTarget) Ext() string  { return "html" }
func (t htmlTarget) DefaultFileName(base string) string {
	return base + "." + t.Ext()
}
func (htmlTarget) render(g *game.Game) (string, error) {
	return render.HTML.Render(g)
}

// reservedTarget is a recognized name without a renderer.
type reservedTarget struct {
	name string
	ext  string
}

func (t reservedTarget) Name() string { return t.name }
func (t reservedTarget) Ext() string  { return t.ext }
func (t reservedTarget) DefaultFileName(base string) string {
	return base + "." + t.ext
}
func (t reservedTarget) render(*game.Game) (string, error) {
	return "", t.notImplemented()
}

func (t reservedTarget) notImplemented() error {
	return fmt.Errorf("%w: target '%s' not implemented yet", ErrTargetNotImplemented, t.name)
}

var (
	ASCII        Target = asciiTarget{}
	HTML         Target = htmlTarget{}
	React        Target = reservedTarget{name: "react", ext: "jsx"}
	EnginePixi   Target = reservedTarget{name: "engine:pixi", ext: "pixi.js"}
	EnginePhaser Target = reservedTarget{name: "engine:phaser", ext: "phaser.js"}
)

var allTargets = []Target{ASCII, HTML, React, EnginePixi, EnginePhaser}

// Targets lists every recognized target, implemented or not.
func Targets() []Target {
	return append([]Target(nil), allTargets...)
}

// TargetNames lists the names of Targets(), in the same order.
func TargetNames() []string {
	names := make([]string, len(allTargets))
	for i, t := range allTargets {
		names[i] = t.Name()
	}
	return names
}

// Implemented reports whether the target has a renderer.
func Implemented(t Target) bool {
	_, reserved := t.(reservedTarget)
	return !reserved
}

// ParseTarget maps a name to its Target. Names are matched exactly.
func ParseTarget(name string) (Target, error) {
	for _, t := range allTargets {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w '%s' (expected one of %s)", ErrUnknownTarget, name,
		strings.Join(TargetNames(), ", "))
}
