package shell

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/othellodsl/othelloc/config"
	"github.com/othellodsl/othelloc/generator"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-out")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"gen": {
		Options: []string{"-out", "-stdout"},
		Args:    generator.TargetNames(),
	},
	"setconfig": {
		Args: []string{
			config.ConfigDefaultTarget, config.ConfigFailOnError,
			config.ConfigHistoryFile, config.ConfigDebug,
		},
	},
	"alias": {
		Args: []string{"set", "delete", "show", "list", "remove", "rm"},
	},
	"help": {
		Args: []string{"load", "gen", "check", "alias", "script", "setconfig"},
	},
}

var commandNames = []string{
	"help", "alias", "load", "unload", "show", "check", "gen", "targets",
	"fmt", "dump", "setconfig", "script", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes while typing; fall back to plain splitting.
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = append(completions, commandNames...)
		for aliasName := range c.sc.aliases {
			completions = append(completions, aliasName)
		}
	} else {
		cmdName := fields[0]
		if aliasValue, isAlias := c.sc.aliases[cmdName]; isAlias {
			aliasFields, err := shellquote.Split(aliasValue)
			if err == nil && len(aliasFields) > 0 {
				cmdName = aliasFields[0]
			}
		}

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-stdout":
			completions = boolValues
		case lastCompleteField == config.ConfigDefaultTarget && cmdName == "setconfig":
			completions = generator.TargetNames()
		case lastCompleteField == config.ConfigFailOnError && cmdName == "setconfig":
			completions = boolValues
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range slices.Sorted(slices.Values(completions)) {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}

	return matches, len(prefix)
}
