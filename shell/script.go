package shell

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
	luajson "layeh.com/gopher-json"

	"github.com/othellodsl/othelloc/dslio"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("othello_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// runCommand executes a shell command line for a script and pushes its
// message, or the error text prefixed with "ERROR: ".
func runCommand(L *lua.LState, line string) int {
	sc := getShell(L)
	cmd, err := extractFields(line)
	if err == nil {
		var r *Response
		r, err = sc.dispatch(cmd)
		if err == nil {
			message := ""
			if r != nil {
				message = r.message
			}
			L.Push(lua.LString(message))
			return 1
		}
	}
	log.Err(err).Str("line", line).Msg("error-executing-script-command")
	L.Push(lua.LString("ERROR: " + err.Error()))
	return 1
}

func Load(L *lua.LState) int {
	return runCommand(L, "load "+shellquote.Join(L.CheckString(1)))
}

func Check(L *lua.LState) int {
	return runCommand(L, "check")
}

func Show(L *lua.LState) int {
	return runCommand(L, "show")
}

func Gen(L *lua.LState) int {
	return runCommand(L, "gen "+L.OptString(1, ""))
}

// Model pushes the loaded game as a table with the same shape as its YAML
// form, or nil when nothing is loaded.
func Model(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	v, err := modelValue(L, sc)
	if err != nil {
		L.RaiseError("othello_model: %v", err)
		return 0
	}
	L.Push(v)
	return 1
}

func modelValue(L *lua.LState, sc *ShellController) (lua.LValue, error) {
	out, err := dslio.GameToYAML(sc.game)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := yaml.Unmarshal([]byte(out), &tree); err != nil {
		return nil, err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	return luajson.Decode(L, data)
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("othello_shell", lsc)
	L.SetGlobal("othello_load", L.NewFunction(Load))
	L.SetGlobal("othello_check", L.NewFunction(Check))
	L.SetGlobal("othello_show", L.NewFunction(Show))
	L.SetGlobal("othello_gen", L.NewFunction(Gen))
	L.SetGlobal("othello_model", L.NewFunction(Model))

	src, err := afero.ReadFile(sc.fs, filepath)
	if err != nil {
		return nil, err
	}
	fn, err := L.Load(bytes.NewReader(src), filepath)
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
