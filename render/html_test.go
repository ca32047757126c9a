package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/othellodsl/othelloc/testhelpers"
)

func TestRenderHTMLStandard(t *testing.T) {
	is := is.New(t)
	out, err := RenderHTML(testhelpers.FullOthello())
	is.NoErr(err)

	is.True(strings.HasPrefix(out, "<!DOCTYPE html>"))
	is.True(strings.Contains(out, "<title>Othello</title>"))
	is.True(strings.Contains(out, "<h1>Othello</h1>"))
	is.True(strings.Contains(out, "<b>Alice</b>"))
	is.True(strings.Contains(out, "<b>Bob</b>"))
	is.True(strings.Contains(out, "<table>"))
	is.True(strings.Contains(out, `<div class="rules">`))
	is.True(strings.Contains(out, "<b>Move type:</b> placement"))
	is.True(strings.Contains(out, "<b>Scoring:</b> count pieces per player"))
	is.True(strings.Contains(out, "<li>timer = 30</li>"))
	is.True(regexp.MustCompile(`class="(dark|light)"`).MatchString(out))

	is.Equal(strings.Count(out, "<tr>"), 8)
	is.Equal(strings.Count(out, "<td "), 64)
	is.Equal(strings.Count(out, `<div class="piece black">`), 2)
	is.Equal(strings.Count(out, `<div class="piece white">`), 2)
}

func TestRenderHTMLPiecePlacement(t *testing.T) {
	is := is.New(t)
	out, err := RenderHTML(testhelpers.StandardOthello())
	is.NoErr(err)
	rows := regexp.MustCompile(`<tr>.*</tr>`).FindAllString(out, -1)
	is.Equal(len(rows), 8)
	cells := regexp.MustCompile(`<td class="\w+">(.*?)</td>`).FindAllStringSubmatch(rows[3], -1)
	is.Equal(len(cells), 8)
	is.Equal(cells[3][1], `<div class="piece white"></div>`)
	is.Equal(cells[4][1], `<div class="piece black"></div>`)
	is.Equal(cells[0][1], "")
}

func TestRenderHTMLDefaultsAndEscaping(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	g.Name = "<Reversi & co>"
	g.Rules.Move = nil
	g.Players.White = nil
	out, err := RenderHTML(g)
	is.NoErr(err)
	is.True(strings.Contains(out, "<h1>&lt;Reversi &amp; co&gt;</h1>"))
	is.True(!strings.Contains(out, "<Reversi"))
	is.True(strings.Contains(out, "<b>Move type:</b> placement"))
	is.True(strings.Contains(out, "<b>?</b>"))
}

func TestRenderHTMLNoBoard(t *testing.T) {
	is := is.New(t)
	g := testhelpers.StandardOthello()
	g.Board = nil
	out, err := RenderHTML(g)
	is.NoErr(err)
	is.True(!strings.Contains(out, "<table>"))
	is.True(strings.Contains(out, "No board defined."))
}

func TestRenderHTMLDeterministic(t *testing.T) {
	is := is.New(t)
	g := testhelpers.FullOthello()
	first, err := HTML.Render(g)
	is.NoErr(err)
	for i := 0; i < 5; i++ {
		again, err := RenderHTML(g)
		is.NoErr(err)
		is.Equal(again, first)
	}
}
