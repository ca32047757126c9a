package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetBool(ConfigDebug), false)
	is.Equal(c.GetString(ConfigDefaultTarget), "ascii")
	is.Equal(c.GetBool(ConfigFailOnError), true)
	is.Equal(len(c.Aliases()), 0)
}

func noConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	noConfigHome(t)
	c := &Config{}
	err := c.Load([]string{"--debug", "--default-target", "html", "generate", "g.othello", "--stdout"})
	is.NoErr(err)
	is.True(c.GetBool(ConfigDebug))
	is.Equal(c.GetString(ConfigDefaultTarget), "html")
	// Parsing stops at the subcommand.
	is.Equal(c.Args(), []string{"generate", "g.othello", "--stdout"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	noConfigHome(t)
	t.Setenv("OTHELLOC_DEFAULT_TARGET", "html")
	t.Setenv("OTHELLOC_FAIL_ON_ERROR", "false")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetString(ConfigDefaultTarget), "html")
	is.Equal(c.GetBool(ConfigFailOnError), false)

	// Flags beat the environment.
	c = &Config{}
	is.NoErr(c.Load([]string{"--default-target=ascii"}))
	is.Equal(c.GetString(ConfigDefaultTarget), "ascii")
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	noConfigHome(t)
	path := filepath.Join(t.TempDir(), "othelloc.yaml")
	err := os.WriteFile(path, []byte("default-target: html\naliases:\n  v: check\n"), 0o644)
	is.NoErr(err)

	c := &Config{}
	is.NoErr(c.Load([]string{"--config", path}))
	is.Equal(c.GetString(ConfigDefaultTarget), "html")
	is.Equal(c.Aliases(), map[string]string{"v": "check"})
	is.Equal(c.ConfigFileUsed(), path)
}

func TestLoadDefaultLocation(t *testing.T) {
	is := is.New(t)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	is.NoErr(os.MkdirAll(filepath.Join(home, "othelloc"), 0o755))
	err := os.WriteFile(filepath.Join(home, "othelloc", "config.yaml"), []byte("fail-on-error: false\n"), 0o644)
	is.NoErr(err)

	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetBool(ConfigFailOnError), false)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	is := is.New(t)
	noConfigHome(t)
	c := &Config{}
	err := c.Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	is.True(err != nil)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.True(c.Load([]string{"--no-such-flag"}) != nil)
}

func TestWrite(t *testing.T) {
	is := is.New(t)
	fsys := afero.NewMemMapFs()
	c := DefaultConfig()
	c.SetFs(fsys)
	c.SetConfigFile("/cfg/othelloc/config.yaml")
	c.Set(ConfigDefaultTarget, "html")
	c.Set(ConfigAliases, map[string]string{"b": "show"})
	is.NoErr(c.Write())

	back := DefaultConfig()
	back.SetFs(fsys)
	back.SetConfigFile("/cfg/othelloc/config.yaml")
	is.NoErr(back.ReadInConfig())
	is.Equal(back.GetString(ConfigDefaultTarget), "html")
	is.Equal(back.Aliases(), map[string]string{"b": "show"})
}
