package game

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is the owner of a piece.
type Color uint8

const (
	Black Color = iota
	White
)

var errUnknownColor = errors.New("unknown color")

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Letter is the single-letter board symbol for the color.
func (c Color) Letter() string {
	if c == Black {
		return "B"
	}
	return "W"
}

// ParseColor accepts black/white and their B/W abbreviations, in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return 0, fmt.Errorf("%w: %q", errUnknownColor, s)
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// Position is a 1-based board coordinate.
type Position struct {
	Row    int `yaml:"row"`
	Column int `yaml:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
}

// Cell is one piece of the initial placement.
type Cell struct {
	Span     `yaml:"-"`
	Position Position `yaml:"position"`
	Color    Color    `yaml:"color"`
}

// InitialPlacement lists the pieces on the board before the first move.
// Cells may fall outside the board or repeat a position; the validator
// reports both.
type InitialPlacement struct {
	Span  `yaml:"-"`
	Cells []Cell `yaml:"cells"`
}
