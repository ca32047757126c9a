package game_test

import (
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/othellodsl/othelloc/game"
	"github.com/othellodsl/othelloc/testhelpers"
)

func TestValueString(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		v   game.Value
		exp string
	}{
		{game.NumberVal(30), "30"},
		{game.NumberVal(-2), "-2"},
		{game.NumberVal(0.5), "0.5"},
		{game.NumberVal(1e6), "1000000"},
		{game.BoolVal(true), "true"},
		{game.StringVal("classic"), "classic"},
		{game.StringVal(""), ""},
	}
	for _, tc := range cases {
		is.Equal(tc.v.String(), tc.exp)
	}
}

func TestDefaultsOnEmptyGame(t *testing.T) {
	is := is.New(t)
	g := &game.Game{}
	is.True(!g.HasBoard())
	is.True(!g.HasUI())
	is.Equal(g.CompileTimeParameters(), nil)
	is.Equal(g.RunTimeParameters(), nil)
	is.Equal(g.InitialCells(), nil)
	is.Equal(g.Sprites(), nil)
	is.Equal(g.ThemeName(), "")
	is.Equal(g.BlackName(), game.UnknownPlayerName)
	is.Equal(g.WhiteName(), game.UnknownPlayerName)
	is.Equal(g.MoveType(), game.DefaultMoveType)
	_, ok := g.CellAt(1, 1)
	is.True(!ok)
}

func TestCellAt(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	c, ok := g.CellAt(4, 5)
	is.True(ok)
	is.Equal(c.Color, game.Black)
	c, ok = g.CellAt(4, 4)
	is.True(ok)
	is.Equal(c.Color, game.White)
	_, ok = g.CellAt(1, 1)
	is.True(!ok)
}

func TestBoardContains(t *testing.T) {
	is := is.New(t)
	b := &game.Board{Rows: 8, Columns: 6}
	is.True(b.Contains(game.Position{Row: 1, Column: 1}))
	is.True(b.Contains(game.Position{Row: 8, Column: 6}))
	is.True(!b.Contains(game.Position{Row: 0, Column: 1}))
	is.True(!b.Contains(game.Position{Row: 8, Column: 7}))
}

func TestPredicateString(t *testing.T) {
	is := is.New(t)
	is.Equal((&game.Predicate{Name: "f", Args: []string{"r", "c"}}).String(), "f(r,c)")
	is.Equal((&game.Predicate{Name: "f", Args: []string{}}).String(), "f()")
	is.Equal((&game.Predicate{Name: "no_moves"}).String(), "no_moves")
	var p *game.Predicate
	is.Equal(p.String(), "")
}

func TestParseColor(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"B", "b", "black", "Black"} {
		c, err := game.ParseColor(s)
		is.NoErr(err)
		is.Equal(c, game.Black)
	}
	c, err := game.ParseColor("W")
	is.NoErr(err)
	is.Equal(c, game.White)
	_, err = game.ParseColor("red")
	is.True(err != nil)
}

func TestDecodeParameterValues(t *testing.T) {
	is := is.New(t)
	var ps game.ParameterSet
	err := yaml.Unmarshal([]byte(`
parameters:
  - name: timer
    value: 30
  - name: ratio
    value: 0.25
  - name: hints
    value: false
  - name: label
    value: "12"
`), &ps)
	is.NoErr(err)
	is.Equal(len(ps.Parameters), 4)

	n, ok := ps.Parameters[0].Value.Num()
	is.True(ok)
	is.Equal(n, 30.0)
	n, ok = ps.Parameters[1].Value.Num()
	is.True(ok)
	is.Equal(n, 0.25)
	b, ok := ps.Parameters[2].Value.Bool()
	is.True(ok)
	is.Equal(b, false)
	s, ok := ps.Parameters[3].Value.Str()
	is.True(ok)
	is.Equal(s, "12")

	p, ok := ps.Lookup("hints")
	is.True(ok)
	is.Equal(p.Value.String(), "false")
	_, ok = ps.Lookup("missing")
	is.True(!ok)
}

func TestDecodeNonFiniteNumber(t *testing.T) {
	is := is.New(t)
	var v game.Value
	err := yaml.Unmarshal([]byte(".inf"), &v)
	is.True(err != nil)
	is.Equal(err.Error(), "line 1: parameter numbers must be finite")
}
