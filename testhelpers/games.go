// Package testhelpers builds sample models shared by the package tests.
package testhelpers

import "github.com/othellodsl/othelloc/game"

// StandardOthello returns a fresh classic 8x8 game between Alice (black)
// and Bob (white) with the usual four center pieces.
func StandardOthello() *game.Game {
	return &game.Game{
		Name:  "Othello",
		Board: &game.Board{Rows: 8, Columns: 8},
		Players: game.Players{
			Black: &game.Player{Name: "Alice", ID: "B"},
			White: &game.Player{Name: "Bob", ID: "W"},
		},
		Initial: &game.InitialPlacement{Cells: []game.Cell{
			Cell(4, 4, game.White),
			Cell(5, 5, game.White),
			Cell(4, 5, game.Black),
			Cell(5, 4, game.Black),
		}},
		Rules: game.Rules{
			Move: &game.MoveRule{
				Type:    "placement",
				ValidIf: &game.Predicate{Name: "captures_in_any_direction", Args: []string{"r", "c"}},
				Effect:  &game.Predicate{Name: "flip_captured_stones", Args: []string{"r", "c"}},
			},
			End:     &game.Predicate{Name: "no_valid_moves"},
			Scoring: "count_pieces_per_player",
		},
	}
}

// FullOthello is StandardOthello with every optional section filled in.
func FullOthello() *game.Game {
	g := StandardOthello()
	g.CompileTime = &game.ParameterSet{Parameters: []game.Parameter{
		{Name: "size", Value: game.NumberVal(8)},
		{Name: "variant", Value: game.StringVal("classic")},
	}}
	g.RunTime = &game.ParameterSet{Parameters: []game.Parameter{
		{Name: "timer", Value: game.NumberVal(30)},
		{Name: "hints", Value: game.BoolVal(true)},
	}}
	g.UI = &game.UITheme{
		Name:    "wooden",
		Sprites: []game.Sprite{{Name: "black_disc"}, {Name: "white_disc"}},
	}
	return g
}

func Cell(row, col int, color game.Color) game.Cell {
	return game.Cell{Position: game.Position{Row: row, Column: col}, Color: color}
}
