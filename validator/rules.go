package validator

import (
	"github.com/samber/lo"

	"github.com/othellodsl/othelloc/game"
)

func checkBoardSize(g *game.Game) []Diagnostic {
	b := g.Board
	if b == nil {
		return []Diagnostic{errorAt(g, "The board must be defined.")}
	}
	if b.Rows < game.MinBoardDim || b.Columns < game.MinBoardDim {
		return []Diagnostic{errorAt(b, "The board must have at least %d rows and %d columns.",
			game.MinBoardDim, game.MinBoardDim)}
	}
	if b.Rows > game.MaxBoardDim || b.Columns > game.MaxBoardDim {
		return []Diagnostic{errorAt(b, "The board must not exceed %d rows and %d columns.",
			game.MaxBoardDim, game.MaxBoardDim)}
	}
	return nil
}

// checkTimer only looks at numeric timers; a string or boolean timer is
// left alone.
func checkTimer(g *game.Game) []Diagnostic {
	p, ok := g.RunTime.Lookup(TimerParameter)
	if !ok {
		return nil
	}
	if n, isNum := p.Value.Num(); isNum && n <= 0 {
		return []Diagnostic{errorAt(p, "The timer value must be a positive number.")}
	}
	return nil
}

func checkPlayers(g *game.Game) []Diagnostic {
	ps := &g.Players
	if ps.Black == nil || ps.White == nil {
		return []Diagnostic{errorAt(ps, "Both black and white players must be defined.")}
	}
	if ps.Black.Name == ps.White.Name {
		return []Diagnostic{warningAt(ps, "Both players have the same name.")}
	}
	return nil
}

func checkInitialCount(g *game.Game) []Diagnostic {
	if g.Initial == nil {
		return nil
	}
	if n := len(g.Initial.Cells); n < MinInitialCells {
		return []Diagnostic{errorAt(g.Initial,
			"There must be at least %d initial positions on the board, found %d.", MinInitialCells, n)}
	}
	return nil
}

// checkPlacements is tied to the move rule: without one there is nothing to
// place pieces for. Duplicates are reported once for the whole placement.
func checkPlacements(g *game.Game) []Diagnostic {
	if g.Rules.Move == nil {
		return nil
	}
	cells := g.InitialCells()
	var diags []Diagnostic
	if g.Board != nil {
		for i := range cells {
			c := &cells[i]
			if !g.Board.Contains(c.Position) {
				diags = append(diags, errorAt(c, "Position %s is outside the %dx%d board.",
					c.Position, g.Board.Rows, g.Board.Columns))
			}
		}
	}
	distinct := lo.UniqBy(cells, func(c game.Cell) game.Position { return c.Position })
	if len(distinct) < len(cells) {
		diags = append(diags, errorAt(g.Initial, "There are duplicated initial positions."))
	}
	return diags
}
