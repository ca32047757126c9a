package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/othellodsl/othelloc/config"
	"github.com/othellodsl/othelloc/dslio"
	"github.com/othellodsl/othelloc/game"
	"github.com/othellodsl/othelloc/generator"
	"github.com/othellodsl/othelloc/shell"
	"github.com/othellodsl/othelloc/validator"
)

var (
	GitVersion string
)

//go:embed othelloc.txt
var banner string

const usageText = `usage: othelloc [global flags] <command> [flags] [args]

commands:
  generate <file> [--target t[,t...]] [--out path] [--stdout]
  validate <file>
  fmt <file> [--yaml] [--write]
  targets
  shell [command line]
  version

global flags:
  --debug  --default-target  --fail-on-error  --history-file  --config`

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

type app struct {
	cfg    *config.Config
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageText)
		os.Exit(exitUsage)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Msgf("Loaded config: %v", cfg.AllSettings())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	a := &app{cfg: cfg, fs: afero.NewOsFs(), stdout: os.Stdout, stderr: os.Stderr}
	code := a.run(ctx, cfg.Args())
	stop()
	os.Exit(code)
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, usageText)
		return exitUsage
	}
	var err error
	switch args[0] {
	case "generate", "gen":
		err = a.generate(ctx, args[1:])
	case "validate", "check":
		err = a.validate(args[1:])
	case "fmt":
		err = a.format(args[1:])
	case "targets":
		err = a.targets()
	case "shell":
		err = a.shell(args[1:])
	case "version":
		fmt.Fprintln(a.stdout, "othelloc", GitVersion)
	case "help", "-h", "--help":
		fmt.Fprintln(a.stdout, usageText)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, pflag.ErrHelp):
		fmt.Fprintln(a.stderr, "Error:", err)
		fmt.Fprintln(a.stderr, usageText)
		return exitUsage
	default:
		fmt.Fprintln(a.stderr, "Error:", err)
		return exitError
	}
}

// parseArgs parses the command flags and requires exactly one file.
func parseArgs(fs *pflag.FlagSet, args []string) (string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s needs exactly one file", errUsage, fs.Name())
	}
	return fs.Arg(0), nil
}

// loadChecked loads a game and prints its diagnostics to stderr.
func (a *app) loadChecked(path string) (*game.Game, []validator.Diagnostic, error) {
	g, err := dslio.LoadFs(a.fs, path)
	if err != nil {
		return nil, nil, err
	}
	diags := validator.Validate(g)
	for _, d := range diags {
		fmt.Fprintln(a.stderr, validator.Format(path, d))
	}
	return g, diags, nil
}

func (a *app) generate(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	targets := fs.StringSliceP("target", "t", []string{a.cfg.GetString(config.ConfigDefaultTarget)},
		"targets to generate, comma separated")
	out := fs.StringP("out", "o", "", "output file or directory")
	stdout := fs.Bool("stdout", false, "print the output instead of writing a file")
	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	g, diags, err := a.loadChecked(path)
	if err != nil {
		return err
	}
	if a.cfg.GetBool(config.ConfigFailOnError) {
		if err := validator.Check(diags); err != nil {
			return err
		}
	}

	opts := generator.Options{OutPath: *out, Stdout: *stdout}
	gen := generator.New(a.fs)
	var results []*generator.Result
	if len(*targets) == 1 {
		opts.Target = (*targets)[0]
		res, err := gen.Generate(g, path, opts)
		if err != nil {
			return err
		}
		results = append(results, res)
	} else {
		results, err = gen.GenerateAll(ctx, g, path, *targets, opts)
		if err != nil {
			return err
		}
	}

	for _, res := range results {
		if res.Stdout {
			fmt.Fprintln(a.stdout, res.Content)
			continue
		}
		log.Info().Str("target", res.Target).Str("path", res.FilePath).Msg("generated")
		fmt.Fprintln(a.stdout, "Code generated successfully:", res.FilePath)
	}
	return nil
}

func (a *app) validate(args []string) error {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	_, diags, err := a.loadChecked(path)
	if err != nil {
		return err
	}
	if err := validator.Check(diags); err != nil {
		return err
	}
	if len(diags) == 0 {
		fmt.Fprintln(a.stdout, "No problems found")
	}
	return nil
}

func (a *app) format(args []string) error {
	fs := pflag.NewFlagSet("fmt", pflag.ContinueOnError)
	asYAML := fs.Bool("yaml", false, "print the YAML form")
	write := fs.BoolP("write", "w", false, "rewrite the file in its own format instead of printing")
	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	g, err := dslio.LoadFs(a.fs, path)
	if err != nil {
		return err
	}

	// A rewritten file must stay loadable, so its extension decides the form.
	if *write {
		if fs.Changed("yaml") && *asYAML != dslio.IsYAMLPath(path) {
			return fmt.Errorf("%w: --yaml does not match the extension of %s", errUsage, path)
		}
		text, err := dslio.Encode(g, path)
		if err != nil {
			return err
		}
		log.Debug().Str("path", path).Msg("rewriting-source")
		return afero.WriteFile(a.fs, path, []byte(text), 0o644)
	}

	text := dslio.GameToDSL(g)
	if *asYAML {
		if text, err = dslio.GameToYAML(g); err != nil {
			return err
		}
	}
	_, err = io.WriteString(a.stdout, text)
	return err
}

func (a *app) targets() error {
	for _, t := range generator.Targets() {
		note := ""
		if !generator.Implemented(t) {
			note = " (not implemented)"
		}
		fmt.Fprintf(a.stdout, "%s%s\n", t.Name(), note)
	}
	return nil
}

func (a *app) shell(args []string) error {
	sc, err := shell.NewShellController(a.cfg)
	if err != nil {
		return err
	}
	sig := make(chan os.Signal, 1)
	line := strings.TrimSpace(strings.Join(args, " "))
	if line != "" {
		sc.Execute(sig, line)
		return nil
	}
	fmt.Fprintln(a.stderr, banner)
	fmt.Fprintln(a.stderr, GitVersion)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)
	go sc.Loop(sig)
	<-sig
	log.Debug().Msg("shell done")
	return nil
}
