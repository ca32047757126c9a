package shell

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/othellodsl/othelloc/config"
	"github.com/othellodsl/othelloc/dslio"
	"github.com/othellodsl/othelloc/generator"
	"github.com/othellodsl/othelloc/render"
	"github.com/othellodsl/othelloc/validator"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	g, err := dslio.LoadFs(sc.fs, cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.source = cmd.args[0]
	sc.game = g
	diags := validator.Validate(g)
	return msg(fmt.Sprintf("Loaded game %s from %s (%d error(s), %d warning(s))",
		strconv.Quote(g.Name), sc.source, len(validator.Errors(diags)), len(validator.Warnings(diags)))), nil
}

func (sc *ShellController) unload(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGameLoaded
	}
	sc.game = nil
	sc.source = ""
	return msg("Game unloaded"), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGameLoaded
	}
	return msg(render.RenderASCII(sc.game)), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGameLoaded
	}
	diags := validator.Validate(sc.game)
	if len(diags) == 0 {
		return msg("No problems found"), nil
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = validator.Format(sc.source, d)
	}
	return msg(strings.Join(lines, "\n")), nil
}

// generate handles gen [target] [-out path] [-stdout true].
func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGameLoaded
	}
	target := sc.config.GetString(config.ConfigDefaultTarget)
	if len(cmd.args) > 0 {
		target = cmd.args[0]
	}
	if sc.config.GetBool(config.ConfigFailOnError) {
		if err := validator.Check(validator.Validate(sc.game)); err != nil {
			return nil, fmt.Errorf("%w; see `check`", err)
		}
	}
	res, err := sc.gen.Generate(sc.game, sc.source, generator.Options{
		Target:  target,
		OutPath: cmd.options.String("out"),
		Stdout:  cmd.options.Bool("stdout"),
	})
	if err != nil {
		return nil, err
	}
	if res.Stdout {
		return msg(res.Content), nil
	}
	return msg("Code generated successfully: " + res.FilePath), nil
}

func (sc *ShellController) targets(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	for _, t := range generator.Targets() {
		status := ""
		if !generator.Implemented(t) {
			status = " (not implemented)"
		}
		fmt.Fprintf(&sb, "%-14s .%s%s\n", t.Name(), t.Ext(), status)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) format(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGameLoaded
	}
	return msg(strings.TrimRight(dslio.GameToDSL(sc.game), "\n")), nil
}

func (sc *ShellController) dump(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGameLoaded
	}
	out, err := dslio.GameToYAML(sc.game)
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(out, "\n")), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil || len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}

	key := cmd.args[0]
	value := cmd.args[1]

	if key == config.ConfigDefaultTarget {
		if _, err := generator.ParseTarget(value); err != nil {
			return nil, err
		}
	}
	sc.config.Set(key, value)

	err := sc.config.Write()
	if err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return msg(fmt.Sprintf("set config %s to %s and saved to file", key, value)), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) saveAliases() error {
	sc.config.Set(config.ConfigAliases, sc.aliases)
	return sc.config.Write()
}

func (sc *ShellController) alias(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		if len(sc.aliases) == 0 {
			return msg("No aliases defined"), nil
		}

		names := make([]string, 0, len(sc.aliases))
		for name := range sc.aliases {
			names = append(names, name)
		}
		sort.Strings(names)

		var result strings.Builder
		result.WriteString("Defined aliases:")
		for _, name := range names {
			result.WriteString(fmt.Sprintf("\n  %s = %s", name, sc.aliases[name]))
		}
		return msg(result.String()), nil
	}

	switch subcommand := cmd.args[0]; subcommand {
	case "set":
		if len(cmd.args) < 3 {
			return nil, errors.New("usage: alias set <name> <command>")
		}
		name := cmd.args[1]

		// Options are put back in sorted order so the saved command is stable.
		commandParts := cmd.args[2:]
		opts := make([]string, 0, len(cmd.options))
		for opt := range cmd.options {
			opts = append(opts, opt)
		}
		sort.Strings(opts)
		for _, opt := range opts {
			for _, val := range cmd.options[opt] {
				commandParts = append(commandParts, "-"+opt, val)
			}
		}
		command := shellquote.Join(commandParts...)

		sc.aliases[name] = command
		if err := sc.saveAliases(); err != nil {
			return nil, fmt.Errorf("failed to save alias: %w", err)
		}
		return msg(fmt.Sprintf("Alias '%s' set to: %s", name, command)), nil

	case "delete", "remove", "rm":
		if len(cmd.args) < 2 {
			return nil, errors.New("usage: alias delete <name>")
		}
		name := cmd.args[1]
		if _, exists := sc.aliases[name]; !exists {
			return nil, fmt.Errorf("alias '%s' not found", name)
		}
		delete(sc.aliases, name)
		if err := sc.saveAliases(); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
		return msg(fmt.Sprintf("Alias '%s' deleted", name)), nil

	case "show":
		if len(cmd.args) < 2 {
			return nil, errors.New("usage: alias show <name>")
		}
		name := cmd.args[1]
		if command, exists := sc.aliases[name]; exists {
			return msg(fmt.Sprintf("%s = %s", name, command)), nil
		}
		return nil, fmt.Errorf("alias '%s' not found", name)

	case "list":
		return sc.alias(&shellcmd{cmd: "alias"})

	default:
		return nil, fmt.Errorf("unknown subcommand '%s'. Valid: set, delete, show, list", subcommand)
	}
}
