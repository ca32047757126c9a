package game

import "strings"

const (
	// DefaultMoveType applies when the move rule names no type.
	DefaultMoveType = "placement"
	// DefaultScoringDescription is the human readable scoring summary. The
	// only scoring method supported so far counts pieces per player.
	DefaultScoringDescription = "count pieces per player"
)

// Rules groups the move, end and scoring rules of a variant.
type Rules struct {
	Span    `yaml:"-"`
	Move    *MoveRule  `yaml:"move,omitempty"`
	End     *Predicate `yaml:"end,omitempty"`
	Scoring string     `yaml:"scoring,omitempty"`
}

type MoveRule struct {
	Span    `yaml:"-"`
	Type    string     `yaml:"type,omitempty"`
	ValidIf *Predicate `yaml:"validIf,omitempty"`
	Effect  *Predicate `yaml:"effect,omitempty"`
}

// Predicate names a rule function, optionally applied to arguments, such
// as captures_in_any_direction(r,c). The compiler never interprets it.
type Predicate struct {
	Span `yaml:"-"`
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

func (p *Predicate) String() string {
	if p == nil {
		return ""
	}
	if p.Args == nil {
		return p.Name
	}
	return p.Name + "(" + strings.Join(p.Args, ",") + ")"
}

// MoveType is the declared move type or DefaultMoveType.
func (g *Game) MoveType() string {
	if g.Rules.Move == nil || g.Rules.Move.Type == "" {
		return DefaultMoveType
	}
	return g.Rules.Move.Type
}
