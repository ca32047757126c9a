package dslio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/othellodsl/othelloc/game"
)

// SourceExt is the extension of game description files.
const SourceExt = ".othello"

// IsYAMLPath reports whether path holds the YAML (or JSON) form of a model
// rather than .othello source.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// LoadFile reads a game model from path on the OS filesystem.
func LoadFile(path string) (*game.Game, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs reads a game model from path on fsys. YAML and JSON files are
// decoded directly into the model; every other file is parsed as .othello
// source.
func LoadFs(fsys afero.Fs, path string) (*game.Game, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !IsYAMLPath(path) {
		g, err := Parse(f)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Str("game", g.Name).Msg("parsed-source")
		return g, nil
	}

	src, err := readSource(f)
	if err != nil {
		return nil, err
	}
	g := &game.Game{}
	if err := yaml.Unmarshal([]byte(src), g); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Str("game", g.Name).Msg("loaded-yaml")
	return g, nil
}

// Encode prints g in the form LoadFs expects for path: YAML for .yaml,
// .yml and .json files, .othello source otherwise. JSON files get YAML
// text too, which LoadFs decodes the same way.
func Encode(g *game.Game, path string) (string, error) {
	if IsYAMLPath(path) {
		return GameToYAML(g)
	}
	return GameToDSL(g), nil
}
