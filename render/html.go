package render

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/samber/lo"

	"github.com/othellodsl/othelloc/game"
)

//go:embed templates/board.html
var boardTemplateHTML string

var boardTemplate = template.Must(template.New("board").Parse(boardTemplateHTML))

type htmlSquare struct {
	Shade string
	Piece string
}

type htmlParameter struct {
	Name  string
	Value string
}

type htmlSection struct {
	Title      string
	Parameters []htmlParameter
}

type htmlPage struct {
	Name     string
	Black    string
	White    string
	HasBoard bool
	Rows     [][]htmlSquare
	MoveType string
	Scoring  string
	Sections []htmlSection
}

// HTML is the Renderer for the standalone HTML page.
var HTML Renderer = RendererFunc(RenderHTML)

func squareShade(row, col int) string {
	if (row+col)%2 == 0 {
		return "light"
	}
	return "dark"
}

func pieceClass(symbol string) string {
	switch symbol {
	case game.Black.Letter():
		return game.Black.String()
	case game.White.Letter():
		return game.White.String()
	}
	return ""
}

func htmlSections(g *game.Game) []htmlSection {
	var sections []htmlSection
	add := func(title string, params []game.Parameter) {
		if len(params) == 0 {
			return
		}
		sections = append(sections, htmlSection{
			Title: title,
			Parameters: lo.Map(params, func(p game.Parameter, _ int) htmlParameter {
				return htmlParameter{Name: p.Name, Value: p.Value.String()}
			}),
		})
	}
	add("Compile-time parameters", g.CompileTimeParameters())
	add("Run-time parameters", g.RunTimeParameters())
	return sections
}

func newHTMLPage(g *game.Game) htmlPage {
	page := htmlPage{
		Name:     g.Name,
		Black:    g.BlackName(),
		White:    g.WhiteName(),
		HasBoard: g.HasBoard(),
		MoveType: g.MoveType(),
		Scoring:  game.DefaultScoringDescription,
		Sections: htmlSections(g),
	}
	if !page.HasBoard {
		return page
	}
	for r, row := range grid(g) {
		page.Rows = append(page.Rows, lo.Map(row, func(symbol string, c int) htmlSquare {
			return htmlSquare{Shade: squareShade(r, c), Piece: pieceClass(symbol)}
		}))
	}
	return page
}

// RenderHTML builds a self-contained HTML page showing the board with its
// initial pieces and a summary of the rules.
func RenderHTML(g *game.Game) (string, error) {
	var sb strings.Builder
	if err := boardTemplate.Execute(&sb, newHTMLPage(g)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
