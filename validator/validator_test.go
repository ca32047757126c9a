package validator

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/othellodsl/othelloc/game"
	"github.com/othellodsl/othelloc/testhelpers"
)

func TestStandardGameIsClean(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Validate(testhelpers.FullOthello())), 0)
}

func TestBoardSizeInRange(t *testing.T) {
	is := is.New(t)
	for rows := game.MinBoardDim; rows <= game.MaxBoardDim; rows++ {
		for cols := game.MinBoardDim; cols <= game.MaxBoardDim; cols++ {
			g := &game.Game{Board: &game.Board{Rows: rows, Columns: cols}}
			is.Equal(len(checkBoardSize(g)), 0)
		}
	}
}

func TestBoardSizeOutOfRange(t *testing.T) {
	is := is.New(t)
	cases := []struct{ rows, cols int }{
		{2, 8}, {8, 2}, {0, 0}, {-1, 5}, {33, 8}, {8, 33}, {100, 100}, {2, 40},
	}
	for _, tc := range cases {
		b := &game.Board{Rows: tc.rows, Columns: tc.cols}
		diags := checkBoardSize(&game.Game{Board: b})
		is.Equal(len(diags), 1)
		is.Equal(diags[0].Severity, SeverityError)
		is.Equal(diags[0].Node, b)
	}
}

func TestMissingBoard(t *testing.T) {
	is := is.New(t)
	g := &game.Game{}
	diags := checkBoardSize(g)
	is.Equal(len(diags), 1)
	is.Equal(diags[0].Message, "The board must be defined.")
}

func TestTimer(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		value  game.Value
		errors int
	}{
		{game.NumberVal(30), 0},
		{game.NumberVal(0.5), 0},
		{game.NumberVal(0), 1},
		{game.NumberVal(-10), 1},
		{game.StringVal("-10"), 0},
		{game.BoolVal(false), 0},
	}
	for _, tc := range cases {
		g := testhelpers.StandardOthello()
		g.RunTime = &game.ParameterSet{Parameters: []game.Parameter{
			{Name: "speed", Value: game.NumberVal(-1)},
			{Name: TimerParameter, Value: tc.value},
		}}
		diags := checkTimer(g)
		is.Equal(len(diags), tc.errors)
		if tc.errors > 0 {
			is.Equal(diags[0].Node, &g.RunTime.Parameters[1])
		}
	}
	is.Equal(len(checkTimer(testhelpers.StandardOthello())), 0)
}

func TestPlayers(t *testing.T) {
	is := is.New(t)

	g := testhelpers.StandardOthello()
	g.Players.White = nil
	diags := checkPlayers(g)
	is.Equal(len(diags), 1)
	is.Equal(diags[0].Severity, SeverityError)

	g = testhelpers.StandardOthello()
	g.Players.Black = nil
	g.Players.White = nil
	is.Equal(len(checkPlayers(g)), 1)

	g = testhelpers.StandardOthello()
	g.Players.White.Name = "Alice"
	diags = checkPlayers(g)
	is.Equal(len(diags), 1)
	is.Equal(diags[0].Severity, SeverityWarning)
	is.True(!HasErrors(diags))
}

func TestInitialCount(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	g.Initial.Cells = g.Initial.Cells[:3]
	diags := checkInitialCount(g)
	is.Equal(len(diags), 1)
	is.Equal(diags[0].Node, g.Initial)

	g.Initial = nil
	is.Equal(len(checkInitialCount(g)), 0)
}

func TestPlacementsOutOfBounds(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	g.Initial.Cells = append(g.Initial.Cells,
		testhelpers.Cell(0, 1, game.Black),
		testhelpers.Cell(9, 9, game.White),
	)
	diags := checkPlacements(g)
	is.Equal(len(diags), 2)
	is.Equal(diags[0].Message, "Position (0,1) is outside the 8x8 board.")
	is.Equal(diags[0].Node, &g.Initial.Cells[4])
	is.Equal(diags[1].Message, "Position (9,9) is outside the 8x8 board.")
}

func TestPlacementsDuplicatesReportedOnce(t *testing.T) {
	is := is.New(t)
	for dups := 1; dups <= 5; dups++ {
		g := testhelpers.StandardOthello()
		for i := 0; i < dups; i++ {
			g.Initial.Cells = append(g.Initial.Cells, testhelpers.Cell(4, 4, game.Black))
		}
		diags := checkPlacements(g)
		is.Equal(len(diags), 1)
		is.Equal(diags[0].Message, "There are duplicated initial positions.")
		is.Equal(diags[0].Node, g.Initial)
	}
}

func TestPlacementsNeedMoveRule(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	g.Rules.Move = nil
	g.Initial.Cells = append(g.Initial.Cells,
		testhelpers.Cell(4, 4, game.Black),
		testhelpers.Cell(20, 1, game.Black))
	is.Equal(len(checkPlacements(g)), 0)
}

func TestPlacementsWithoutBoard(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	g.Board = nil
	g.Initial.Cells = append(g.Initial.Cells, testhelpers.Cell(4, 4, game.Black))
	diags := checkPlacements(g)
	is.Equal(len(diags), 1)
}

func TestValidateRunsEveryRule(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	g.Board.Rows = 2
	g.RunTime = &game.ParameterSet{Parameters: []game.Parameter{{Name: "timer", Value: game.NumberVal(0)}}}
	g.Players.White.Name = "Alice"
	g.Initial.Cells = []game.Cell{
		testhelpers.Cell(1, 1, game.Black),
		testhelpers.Cell(1, 1, game.White),
		testhelpers.Cell(3, 1, game.White),
	}
	diags := Validate(g)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.String()
	}
	is.Equal(msgs, []string{
		"error: The board must have at least 3 rows and 3 columns.",
		"error: The timer value must be a positive number.",
		"warning: Both players have the same name.",
		"error: There must be at least 4 initial positions on the board, found 3.",
		"error: Position (3,1) is outside the 2x8 board.",
		"error: There are duplicated initial positions.",
	})
	is.Equal(len(Errors(diags)), 5)
	is.Equal(len(Warnings(diags)), 1)
	is.True(HasErrors(diags))
}

func TestValidateDoesNotPanicOnEmptyModel(t *testing.T) {
	is := is.New(t)
	diags := Validate(&game.Game{})
	is.Equal(len(diags), 2) // missing board, missing players
}

func TestFormat(t *testing.T) {
	is := is.New(t)
	b := &game.Board{Span: game.Span{Pos: game.Loc{Line: 3, Column: 5}}, Rows: 1, Columns: 1}
	d := checkBoardSize(&game.Game{Board: b})[0]
	is.Equal(Format("v.othello", d), "v.othello:3:5: error: The board must have at least 3 rows and 3 columns.")

	b.Pos = game.Loc{}
	is.Equal(Format("v.othello", d), "v.othello: error: The board must have at least 3 rows and 3 columns.")
}

func TestCheck(t *testing.T) {
	is := is.New(t)
	is.NoErr(Check(nil))
	is.NoErr(Check([]Diagnostic{{Severity: SeverityWarning, Message: "w"}}))

	err := Check(Validate(&game.Game{}))
	is.True(errors.Is(err, ErrInvalidModel))
	is.Equal(err.Error(), "validation failed: 2 error(s)")
}
