package render

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/othellodsl/othelloc/game"
)

// NoBoardMessage ends the ASCII dump of a model without a board.
const NoBoardMessage = "! No board defined."

// ASCII is the Renderer for the plain text dump.
var ASCII Renderer = RendererFunc(func(g *game.Game) (string, error) {
	return RenderASCII(g), nil
})

func writeParameters(lines []string, header string, params []game.Parameter) []string {
	if len(params) == 0 {
		return lines
	}
	lines = append(lines, header)
	for _, p := range params {
		lines = append(lines, fmt.Sprintf("  - %s = %s", p.Name, p.Value))
	}
	return append(lines, "")
}

// RenderASCII dumps the model as text: parameters and theme first, then the
// board grid with 1-based row and column indices, then the players.
func RenderASCII(g *game.Game) string {
	lines := []string{"# Game: " + g.Name, ""}

	lines = writeParameters(lines, "> Compile-time:", g.CompileTimeParameters())
	lines = writeParameters(lines, "> Run-time:", g.RunTimeParameters())

	if g.HasUI() {
		if name := g.ThemeName(); name != "" {
			lines = append(lines, "> UI Theme: "+name)
		}
		if sprites := g.Sprites(); len(sprites) > 0 {
			lines = append(lines, "> Sprites:")
			lines = append(lines, lo.Map(sprites, func(s game.Sprite, _ int) string {
				return "  - " + s.Name
			})...)
		}
		lines = append(lines, "")
	}

	if !g.HasBoard() {
		lines = append(lines, NoBoardMessage)
		return strings.Join(lines, "\n")
	}

	cols := max(g.Board.Columns, 0)
	header := []string{"   "}
	for c := 1; c <= cols; c++ {
		header = append(header, fmt.Sprintf("%2d", c))
	}
	lines = append(lines, strings.Join(header, " "))
	lines = append(lines, "   "+strings.Repeat("-", cols*3))

	for r, row := range grid(g) {
		cells := lo.Map(row, func(s string, _ int) string { return fmt.Sprintf("%2s", s) })
		lines = append(lines, fmt.Sprintf("%2d | %s", r+1, strings.Join(cells, " ")))
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Players: %s (B) vs %s (W)", g.BlackName(), g.WhiteName()))
	return strings.Join(lines, "\n")
}
