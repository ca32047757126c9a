package dslio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/othellodsl/othelloc/game"
)

const indent = "  "

type printer struct {
	sb    strings.Builder
	depth int
}

func (p *printer) line(format string, args ...any) {
	if format == "" {
		p.sb.WriteString("\n")
		return
	}
	p.sb.WriteString(strings.Repeat(indent, p.depth))
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteString("\n")
}

func (p *printer) open(format string, args ...any) {
	p.line(format+" {", args...)
	p.depth++
}

func (p *printer) close() {
	p.depth--
	p.line("}")
}

// bare reports whether s can be written without quotes.
func bare(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if !isIdentRune(ch, i) {
			return false
		}
	}
	return true
}

func nameText(s string) string {
	if bare(s) {
		return s
	}
	return strconv.Quote(s)
}

func valueText(v game.Value) string {
	if _, ok := v.Str(); ok {
		return strconv.Quote(v.String())
	}
	return v.String()
}

// GameToDSL prints g in canonical .othello form. Parsing the result yields
// the same model, apart from source locations.
func GameToDSL(g *game.Game) string {
	p := &printer{}
	p.open("game %s", strconv.Quote(g.Name))

	// Each section is preceded by a blank line except the first.
	first := true
	section := func() {
		if !first {
			p.line("")
		}
		first = false
	}

	if g.Board != nil {
		section()
		p.line("board %d x %d", g.Board.Rows, g.Board.Columns)
	}
	if g.Players.Black != nil || g.Players.White != nil {
		section()
		p.open("players")
		printPlayer(p, "black", g.Players.Black)
		printPlayer(p, "white", g.Players.White)
		p.close()
	}
	if g.CompileTime != nil {
		section()
		printParameters(p, "compile-time", g.CompileTime)
	}
	if g.RunTime != nil {
		section()
		printParameters(p, "run-time", g.RunTime)
	}
	if g.UI != nil {
		section()
		p.open("ui")
		if g.UI.Name != "" {
			p.line("theme %s", strconv.Quote(g.UI.Name))
		}
		if len(g.UI.Sprites) > 0 {
			names := lo.Map(g.UI.Sprites, func(s game.Sprite, _ int) string {
				return nameText(s.Name)
			})
			p.line("sprites { %s }", strings.Join(names, ", "))
		}
		p.close()
	}
	if g.Initial != nil {
		section()
		p.open("initial")
		for _, c := range g.Initial.Cells {
			p.line("cell(%d,%d) = %s", c.Position.Row, c.Position.Column, c.Color.Letter())
		}
		p.close()
	}
	r := g.Rules
	if r.Move != nil || r.End != nil || r.Scoring != "" {
		section()
		p.open("rules")
		if m := r.Move; m != nil {
			p.open("move")
			if m.Type != "" {
				p.line("type %s", nameText(m.Type))
			}
			if m.ValidIf != nil {
				p.line("valid if %s", m.ValidIf)
			}
			if m.Effect != nil {
				p.line("effect %s", m.Effect)
			}
			p.close()
		}
		if r.End != nil {
			p.line("end when %s", r.End)
		}
		if r.Scoring != "" {
			p.line("scoring %s", nameText(r.Scoring))
		}
		p.close()
	}
	p.close()
	return p.sb.String()
}

func printPlayer(p *printer, side string, pl *game.Player) {
	if pl == nil {
		return
	}
	parts := []string{side}
	if pl.Name != "" {
		parts = append(parts, strconv.Quote(pl.Name))
	}
	if pl.ID != "" {
		parts = append(parts, "{ id "+strconv.Quote(pl.ID)+" }")
	}
	p.line("%s", strings.Join(parts, " "))
}

func printParameters(p *printer, keyword string, ps *game.ParameterSet) {
	p.open(keyword)
	for _, param := range ps.Parameters {
		p.line("%s = %s", nameText(param.Name), valueText(param.Value))
	}
	p.close()
}

// GameToYAML dumps g as YAML. LoadFile reads the result back.
func GameToYAML(g *game.Game) (string, error) {
	out, err := yaml.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
