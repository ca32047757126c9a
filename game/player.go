package game

// UnknownPlayerName is displayed for a player that is missing or unnamed.
const UnknownPlayerName = "?"

// Players holds both sides. Either may be missing in a model that has not
// been validated yet.
type Players struct {
	Span  `yaml:"-"`
	Black *Player `yaml:"black,omitempty"`
	White *Player `yaml:"white,omitempty"`
}

type Player struct {
	Span `yaml:"-"`
	Name string `yaml:"name"`
	ID   string `yaml:"id,omitempty"`
}

func displayName(p *Player) string {
	if p == nil || p.Name == "" {
		return UnknownPlayerName
	}
	return p.Name
}

// BlackName is the black player's name or UnknownPlayerName.
func (g *Game) BlackName() string {
	return displayName(g.Players.Black)
}

// WhiteName is the white player's name or UnknownPlayerName.
func (g *Game) WhiteName() string {
	return displayName(g.Players.White)
}
