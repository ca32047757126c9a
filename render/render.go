// Package render turns a game model into output documents. Every renderer
// is a pure function of the model: no clock, no locale, no randomness.
package render

import "github.com/othellodsl/othelloc/game"

// Renderer produces one output document for a model.
type Renderer interface {
	Render(g *game.Game) (string, error)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(g *game.Game) (string, error)

func (f RendererFunc) Render(g *game.Game) (string, error) {
	return f(g)
}

const emptySquare = "."

// grid returns rows x columns symbols: "." for an empty square, B or W for
// an initial piece. Cells off the board are skipped without complaint; the
// validator is the one that reports them. A later cell on the same square
// overwrites an earlier one.
func grid(g *game.Game) [][]string {
	b := g.Board
	if b.Rows <= 0 {
		return nil
	}
	squares := make([][]string, b.Rows)
	for r := range squares {
		squares[r] = make([]string, max(b.Columns, 0))
		for c := range squares[r] {
			squares[r][c] = emptySquare
		}
	}
	for _, cell := range g.InitialCells() {
		if !b.Contains(cell.Position) {
			continue
		}
		squares[cell.Position.Row-1][cell.Position.Column-1] = cell.Color.Letter()
	}
	return squares
}
