package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/othellodsl/othelloc/config"
	"github.com/othellodsl/othelloc/game"
	"github.com/othellodsl/othelloc/generator"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGameLoaded      = errors.New("no game loaded; use the `load` command first")
	errQuit              = errors.New("quit")
)

// maxAliasDepth stops an alias that expands to itself.
const maxAliasDepth = 10

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config
	fs     afero.Fs
	gen    *generator.Generator

	source  string
	game    *game.Game
	aliases map[string]string
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func newController(cfg *config.Config, fs afero.Fs, out io.Writer) *ShellController {
	aliases := map[string]string{}
	for k, v := range cfg.Aliases() {
		aliases[k] = v
	}
	return &ShellController{
		out:     out,
		config:  cfg,
		fs:      fs,
		gen:     generator.New(fs),
		aliases: aliases,
	}
}

// NewShellController sets up an interactive shell writing to the terminal.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newController(cfg, afero.NewOsFs(), os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mothelloc>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

// extractFields splits a command line into the command, its positional
// arguments and its -option value pairs. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") && len(fields[i]) > 1 {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			opt := fields[i][1:]
			options[opt] = append(options[opt], fields[i+1])
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// expandAlias replaces a leading alias name with its definition. The rest
// of the line is appended to the expansion.
func (sc *ShellController) expandAlias(line string) (string, error) {
	for depth := 0; ; depth++ {
		name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		expansion, ok := sc.aliases[name]
		if !ok {
			return line, nil
		}
		if depth == maxAliasDepth {
			return "", fmt.Errorf("alias '%s' expands too deeply", name)
		}
		line = strings.TrimSpace(expansion + " " + rest)
	}
}

func (sc *ShellController) handle(line string) (*Response, error) {
	line, err := sc.expandAlias(line)
	if err != nil {
		return nil, err
	}
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.dispatch(cmd)
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("shell-command")

	switch cmd.cmd {
	case "exit", "quit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "alias":
		return sc.alias(cmd)
	case "load":
		return sc.load(cmd)
	case "unload":
		return sc.unload(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "check":
		return sc.check(cmd)
	case "gen":
		return sc.generate(cmd)
	case "targets":
		return sc.targets(cmd)
	case "fmt":
		return sc.format(cmd)
	case "dump":
		return sc.dump(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "script":
		return sc.script(cmd)
	default:
		return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
	}
}

// Execute runs one command line and reports the result.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.handle(line)
	switch {
	case errors.Is(err, errQuit):
		sig <- syscall.SIGINT
	case errors.Is(err, errNoData):
	case err != nil:
		sc.showError(err)
	case resp != nil && resp.message != "":
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		resp, err := sc.handle(line)
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			if !errors.Is(err, errNoData) {
				sc.showError(err)
			}
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
