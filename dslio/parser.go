// Package dslio reads and writes game descriptions: the .othello source
// language, plus a YAML form of the same model.
package dslio

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/spf13/afero"

	"github.com/othellodsl/othelloc/game"
)

// SyntaxError reports malformed source at a location.
type SyntaxError struct {
	Loc game.Loc
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// ParseFile parses the .othello file at path.
func ParseFile(path string) (*game.Game, error) {
	return ParseFs(afero.NewOsFs(), path)
}

// ParseFs parses the .othello file at path on fsys.
func ParseFs(fsys afero.Fs, path string) (*game.Game, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func ParseString(src string) (*game.Game, error) {
	return Parse(strings.NewReader(src))
}

// Parse reads one game description from r.
func Parse(r io.Reader) (*game.Game, error) {
	src, err := readSource(r)
	if err != nil {
		return nil, err
	}
	p := newParser(src)
	return p.parseFile()
}

// bail is the panic payload used to unwind the parser on the first error.
type bail struct{ err *SyntaxError }

type parser struct {
	s    scanner.Scanner
	tok  rune
	text string
	pos  game.Loc
	seen map[string]bool
}

func isIdentRune(ch rune, i int) bool {
	return ch == '_' || unicode.IsLetter(ch) ||
		(i > 0 && (unicode.IsDigit(ch) || ch == '-'))
}

func newParser(src string) *parser {
	p := &parser{seen: map[string]bool{}}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	p.s.IsIdentRune = isIdentRune
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Pos()
		panic(bail{&SyntaxError{Loc: game.Loc{Line: pos.Line, Column: pos.Column}, Msg: msg}})
	}
	return p
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.pos = game.Loc{Line: p.s.Position.Line, Column: p.s.Position.Column}
}

func (p *parser) errorf(format string, args ...any) {
	p.errorAt(p.pos, format, args...)
}

func (p *parser) errorAt(loc game.Loc, format string, args ...any) {
	panic(bail{&SyntaxError{Loc: loc, Msg: fmt.Sprintf(format, args...)}})
}

func describe(tok rune, text string) string {
	switch tok {
	case scanner.EOF:
		return "end of file"
	case scanner.Ident:
		return "'" + text + "'"
	case scanner.String:
		return "string " + text
	case scanner.Int, scanner.Float:
		return "number " + text
	}
	return "'" + text + "'"
}

func (p *parser) unexpected(want string) {
	p.errorf("expected %s, found %s", want, describe(p.tok, p.text))
}

func (p *parser) is(tok rune) bool {
	return p.tok == tok
}

func (p *parser) isKeyword(kw string) bool {
	return p.tok == scanner.Ident && p.text == kw
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.unexpected("'" + string(tok) + "'")
	}
	p.next()
}

func (p *parser) expectKeyword(kw string) game.Loc {
	if !p.isKeyword(kw) {
		p.unexpected("'" + kw + "'")
	}
	pos := p.pos
	p.next()
	return pos
}

func (p *parser) ident() string {
	if p.tok != scanner.Ident {
		p.unexpected("identifier")
	}
	s := p.text
	p.next()
	return s
}

func (p *parser) str() string {
	if p.tok != scanner.String {
		p.unexpected("string")
	}
	s, err := strconv.Unquote(p.text)
	if err != nil {
		p.errorf("bad string %s", p.text)
	}
	p.next()
	return s
}

// name accepts either a bare identifier or a quoted string.
func (p *parser) name() string {
	if p.tok == scanner.String {
		return p.str()
	}
	return p.ident()
}

func (p *parser) integer() int {
	neg := false
	if p.tok == '-' {
		neg = true
		p.next()
	}
	if p.tok != scanner.Int {
		p.unexpected("integer")
	}
	n, err := strconv.Atoi(p.text)
	if err != nil {
		p.errorf("bad integer %s", p.text)
	}
	p.next()
	if neg {
		return -n
	}
	return n
}

// separator skips an optional ',' or ';'.
func (p *parser) separator() {
	if p.tok == ',' || p.tok == ';' {
		p.next()
	}
}

func (p *parser) once(section string) {
	if p.seen[section] {
		p.errorf("duplicate %s section", section)
	}
	p.seen[section] = true
}

func (p *parser) parseFile() (g *game.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bail)
			if !ok {
				panic(r)
			}
			g, err = nil, b.err
		}
	}()

	p.next()
	g = &game.Game{}
	g.Pos = p.expectKeyword("game")
	g.Name = p.name()
	p.expect('{')
	for !p.is('}') {
		p.parseSection(g)
		p.separator()
	}
	p.next()
	if !p.is(scanner.EOF) {
		p.unexpected("end of file")
	}
	return g, nil
}

func (p *parser) parseSection(g *game.Game) {
	if p.tok != scanner.Ident {
		p.unexpected("section")
	}
	pos := p.pos
	kw := p.text
	switch kw {
	case "board":
		p.once(kw)
		p.next()
		g.Board = p.parseBoard(pos)
	case "players":
		p.once(kw)
		p.next()
		g.Players = p.parsePlayers(pos)
	case "compile-time":
		p.once(kw)
		p.next()
		g.CompileTime = p.parseParameters(pos)
	case "run-time":
		p.once(kw)
		p.next()
		g.RunTime = p.parseParameters(pos)
	case "ui":
		p.once(kw)
		p.next()
		g.UI = p.parseUI(pos)
	case "initial":
		p.once(kw)
		p.next()
		g.Initial = p.parseInitial(pos)
	case "rules":
		p.once(kw)
		p.next()
		g.Rules = p.parseRules(pos)
	default:
		p.errorf("unknown section '%s'", kw)
	}
}

// parseBoard reads "R x C". The scanner reads "8x8" as 8 followed by the
// identifier x8, so that spelling is accepted as well.
func (p *parser) parseBoard(pos game.Loc) *game.Board {
	b := &game.Board{Span: game.Span{Pos: pos}}
	b.Rows = p.integer()
	if p.tok == scanner.Ident && len(p.text) > 1 && p.text[0] == 'x' {
		cols, err := strconv.Atoi(p.text[1:])
		if err != nil {
			p.unexpected("'x'")
		}
		b.Columns = cols
		p.next()
		return b
	}
	p.expectKeyword("x")
	b.Columns = p.integer()
	return b
}

func (p *parser) parsePlayers(pos game.Loc) game.Players {
	players := game.Players{Span: game.Span{Pos: pos}}
	p.expect('{')
	for !p.is('}') {
		ppos := p.pos
		side := p.ident()
		if side != "black" && side != "white" {
			p.errorAt(ppos, "unknown player '%s', expected black or white", side)
		}
		pl := &game.Player{Span: game.Span{Pos: ppos}}
		if p.is(scanner.String) {
			pl.Name = p.str()
		}
		if p.is('{') {
			p.next()
			for !p.is('}') {
				apos := p.pos
				attr := p.ident()
				if attr != "id" {
					p.errorAt(apos, "unknown player attribute '%s'", attr)
				}
				p.optionalAssign()
				pl.ID = p.name()
				p.separator()
			}
			p.next()
		}
		slot := &players.Black
		if side == "white" {
			slot = &players.White
		}
		if *slot != nil {
			p.errorAt(ppos, "%s player declared twice", side)
		}
		*slot = pl
		p.separator()
	}
	p.next()
	return players
}

func (p *parser) optionalAssign() {
	if p.tok == '=' || p.tok == ':' {
		p.next()
	}
}

func (p *parser) parseParameters(pos game.Loc) *game.ParameterSet {
	ps := &game.ParameterSet{Span: game.Span{Pos: pos}}
	p.expect('{')
	for !p.is('}') {
		param := game.Parameter{Span: game.Span{Pos: p.pos}}
		param.Name = p.name()
		if p.tok != '=' && p.tok != ':' {
			p.unexpected("'='")
		}
		p.next()
		param.Value = p.value()
		ps.Parameters = append(ps.Parameters, param)
		p.separator()
	}
	p.next()
	return ps
}

func (p *parser) value() game.Value {
	switch {
	case p.tok == scanner.String:
		return game.StringVal(p.str())
	case p.isKeyword("true"), p.isKeyword("false"):
		v := game.BoolVal(p.text == "true")
		p.next()
		return v
	case p.tok == scanner.Ident:
		return game.StringVal(p.ident())
	}
	sign := ""
	if p.tok == '-' {
		sign = "-"
		p.next()
	}
	if p.tok != scanner.Int && p.tok != scanner.Float {
		p.unexpected("value")
	}
	n, err := strconv.ParseFloat(sign+p.text, 64)
	if err != nil {
		p.errorf("bad number %s", p.text)
	}
	p.next()
	return game.NumberVal(n)
}

func (p *parser) parseUI(pos game.Loc) *game.UITheme {
	ui := &game.UITheme{Span: game.Span{Pos: pos}}
	p.expect('{')
	for !p.is('}') {
		kpos := p.pos
		kw := p.ident()
		switch kw {
		case "theme":
			p.optionalAssign()
			ui.Name = p.name()
		case "sprites":
			p.expect('{')
			for !p.is('}') {
				sp := game.Sprite{Span: game.Span{Pos: p.pos}}
				sp.Name = p.name()
				ui.Sprites = append(ui.Sprites, sp)
				p.separator()
			}
			p.next()
		default:
			p.errorAt(kpos, "unknown ui entry '%s'", kw)
		}
		p.separator()
	}
	p.next()
	return ui
}

func (p *parser) parseInitial(pos game.Loc) *game.InitialPlacement {
	ip := &game.InitialPlacement{Span: game.Span{Pos: pos}}
	p.expect('{')
	for !p.is('}') {
		c := game.Cell{Span: game.Span{Pos: p.pos}}
		p.expectKeyword("cell")
		p.expect('(')
		c.Position.Row = p.integer()
		p.expect(',')
		c.Position.Column = p.integer()
		p.expect(')')
		p.expect('=')
		if p.tok != scanner.Ident {
			p.unexpected("color")
		}
		color, err := game.ParseColor(p.text)
		if err != nil {
			p.errorf("%v", err)
		}
		c.Color = color
		p.next()
		ip.Cells = append(ip.Cells, c)
		p.separator()
	}
	p.next()
	return ip
}

func (p *parser) parseRules(pos game.Loc) game.Rules {
	rules := game.Rules{Span: game.Span{Pos: pos}}
	p.expect('{')
	for !p.is('}') {
		kpos := p.pos
		kw := p.ident()
		switch kw {
		case "move":
			if rules.Move != nil {
				p.errorAt(kpos, "move rule declared twice")
			}
			rules.Move = p.parseMove(kpos)
		case "end":
			p.expectKeyword("when")
			rules.End = p.predicate()
		case "scoring":
			p.optionalAssign()
			rules.Scoring = p.name()
		default:
			p.errorAt(kpos, "unknown rule '%s'", kw)
		}
		p.separator()
	}
	p.next()
	return rules
}

func (p *parser) parseMove(pos game.Loc) *game.MoveRule {
	m := &game.MoveRule{Span: game.Span{Pos: pos}}
	p.expect('{')
	for !p.is('}') {
		kpos := p.pos
		kw := p.ident()
		switch kw {
		case "type":
			p.optionalAssign()
			m.Type = p.name()
		case "valid":
			p.expectKeyword("if")
			m.ValidIf = p.predicate()
		case "effect":
			m.Effect = p.predicate()
		default:
			p.errorAt(kpos, "unknown move entry '%s'", kw)
		}
		p.separator()
	}
	p.next()
	return m
}

// predicate reads name or name(arg, ...). Arguments are identifiers or
// integers and are kept as written.
func (p *parser) predicate() *game.Predicate {
	pred := &game.Predicate{Span: game.Span{Pos: p.pos}}
	pred.Name = p.ident()
	if !p.is('(') {
		return pred
	}
	p.next()
	pred.Args = []string{}
	for !p.is(')') {
		switch p.tok {
		case scanner.Ident, scanner.Int:
			pred.Args = append(pred.Args, p.text)
			p.next()
		default:
			p.unexpected("argument")
		}
		if !p.is(')') {
			p.expect(',')
		}
	}
	p.next()
	return pred
}
