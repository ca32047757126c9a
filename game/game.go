// Package game holds the in-memory model of one Othello-style game variant,
// as handed over by the source reader. The model is built once per
// compilation and only read afterwards; the validator and the renderers
// never mutate it.
package game

import "fmt"

const (
	// MinBoardDim and MaxBoardDim bound both board dimensions. They are
	// checked by the validator, never enforced while building a model.
	MinBoardDim = 3
	MaxBoardDim = 32
)

// Loc is a 1-based source location. The zero Loc means "unknown", which is
// what models decoded from YAML carry.
type Loc struct {
	Line   int
	Column int
}

func (l Loc) IsZero() bool {
	return l.Line == 0 && l.Column == 0
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Node is any element of the model a diagnostic can point at.
type Node interface {
	Location() Loc
}

// Span is embedded in every model node to record where the reader found it.
type Span struct {
	Pos Loc `yaml:"-"`
}

func (s Span) Location() Loc {
	return s.Pos
}

// Game is the root of the model.
type Game struct {
	Span        `yaml:"-"`
	Name        string            `yaml:"name"`
	Board       *Board            `yaml:"board,omitempty"`
	Players     Players           `yaml:"players"`
	CompileTime *ParameterSet     `yaml:"compileTime,omitempty"`
	RunTime     *ParameterSet     `yaml:"runTime,omitempty"`
	UI          *UITheme          `yaml:"ui,omitempty"`
	Initial     *InitialPlacement `yaml:"initial,omitempty"`
	Rules       Rules             `yaml:"rules"`
}

// Board is the playing surface. Rows and Columns are not range checked here.
type Board struct {
	Span    `yaml:"-"`
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// Contains reports whether the 1-based position lies on the board.
func (b *Board) Contains(p Position) bool {
	return p.Row >= 1 && p.Row <= b.Rows && p.Column >= 1 && p.Column <= b.Columns
}

// UITheme is the optional cosmetic section of a variant.
type UITheme struct {
	Span    `yaml:"-"`
	Name    string   `yaml:"name,omitempty"`
	Sprites []Sprite `yaml:"sprites,omitempty"`
}

type Sprite struct {
	Span `yaml:"-"`
	Name string `yaml:"name"`
}

// HasBoard reports whether a board section was given.
func (g *Game) HasBoard() bool {
	return g.Board != nil
}

// CompileTimeParameters returns the compile-time parameters in source order,
// or nil when the section is absent.
func (g *Game) CompileTimeParameters() []Parameter {
	if g.CompileTime == nil {
		return nil
	}
	return g.CompileTime.Parameters
}

// RunTimeParameters returns the run-time parameters in source order, or nil
// when the section is absent.
func (g *Game) RunTimeParameters() []Parameter {
	if g.RunTime == nil {
		return nil
	}
	return g.RunTime.Parameters
}

// HasUI reports whether a ui section was given, even an empty one.
func (g *Game) HasUI() bool {
	return g.UI != nil
}

// ThemeName is the theme name, or "" when there is none.
func (g *Game) ThemeName() string {
	if g.UI == nil {
		return ""
	}
	return g.UI.Name
}

func (g *Game) Sprites() []Sprite {
	if g.UI == nil {
		return nil
	}
	return g.UI.Sprites
}

// InitialCells returns the initial placement cells, or nil when the section
// is absent.
func (g *Game) InitialCells() []Cell {
	if g.Initial == nil {
		return nil
	}
	return g.Initial.Cells
}

// CellAt returns the first initial cell placed at the 1-based row and
// column, if any.
func (g *Game) CellAt(row, col int) (Cell, bool) {
	for _, c := range g.InitialCells() {
		if c.Position.Row == row && c.Position.Column == col {
			return c, true
		}
	}
	return Cell{}, false
}
