// Package config holds compiler settings. Values come, in order of
// precedence, from command line flags, OTHELLOC_* environment variables,
// the config file and built-in defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug         = "debug"
	ConfigDefaultTarget = "default-target"
	ConfigFailOnError   = "fail-on-error"
	ConfigHistoryFile   = "history-file"
	ConfigAliases       = "aliases"
	// ConfigFile is only a flag; it names the file the rest is read from.
	ConfigFile = "config"
)

const (
	appName        = "othelloc"
	envPrefix      = "OTHELLOC"
	configFileName = "config.yaml"
)

type Config struct {
	*viper.Viper
	fs   afero.Fs
	args []string
}

// DefaultConfig returns a config holding only built-in defaults. It reads
// no flags, environment or file.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New(), fs: afero.NewOsFs()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigDefaultTarget, "ascii")
	c.SetDefault(ConfigFailOnError, true)
	c.SetDefault(ConfigHistoryFile, filepath.Join(os.TempDir(), "othelloc_history"))
	c.SetDefault(ConfigAliases, map[string]string{})
}

// Dir is the directory the config file lives in by default:
// $XDG_CONFIG_HOME/othelloc, or the platform equivalent.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, appName)
}

// Load parses the global flags in args and reads the environment and the
// config file. Flag parsing stops at the first non-flag argument; it and
// everything after it is returned by Args.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	c.setDefaults()

	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigDefaultTarget, "ascii", "target used when none is given")
	fs.Bool(ConfigFailOnError, true, "refuse to generate when validation reports errors")
	fs.String(ConfigHistoryFile, c.GetString(ConfigHistoryFile), "shell history file")
	fs.String(ConfigFile, "", "config file (default "+filepath.Join(Dir(), configFileName)+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()

	for _, name := range []string{ConfigDebug, ConfigDefaultTarget, ConfigFailOnError, ConfigHistoryFile} {
		if err := c.BindPFlag(name, fs.Lookup(name)); err != nil {
			return err
		}
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigType("yaml")
	if file, _ := fs.GetString(ConfigFile); file != "" {
		c.SetConfigFile(file)
	} else {
		c.AddConfigPath(Dir())
		c.SetConfigName(strings.TrimSuffix(configFileName, filepath.Ext(configFileName)))
	}
	err := c.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		log.Debug().Msg("no config file found, using defaults")
	case err != nil:
		return err
	default:
		log.Debug().Str("file", c.ConfigFileUsed()).Msg("read config file")
	}
	return nil
}

// Args returns the arguments left after the global flags.
func (c *Config) Args() []string {
	return c.args
}

// SetFs switches the filesystem used to read and write the config file.
func (c *Config) SetFs(fs afero.Fs) {
	c.fs = fs
	c.Viper.SetFs(fs)
}

// Aliases returns the saved shell aliases.
func (c *Config) Aliases() map[string]string {
	return c.GetStringMapString(ConfigAliases)
}

// Write saves the current settings to the config file in use, or to the
// default location when no file was read.
func (c *Config) Write() error {
	path := c.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(Dir(), configFileName)
	}
	if err := c.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := c.WriteConfigAs(path); err != nil {
		return err
	}
	log.Debug().Str("file", path).Msg("wrote config file")
	return nil
}
