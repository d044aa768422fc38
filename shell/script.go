package shell

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("agentsearch_shell")
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

type handlerFunc func(sc *ShellController, cmd *shellcmd) (*Response, error)

// luaCommand exposes a shell command to Lua. The Lua function takes the rest
// of the command line as a string and returns the output, or a string
// starting with "ERROR: ".
func luaCommand(name string, handler handlerFunc) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := L.OptString(1, "")
		sc := getShell(L)
		cmd, err := extractFields(name + " " + lv)
		if err != nil {
			log.Err(err).Msg("error-parsing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := handler(sc, cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// luaLastRun returns the most recent search as a Lua table with the same
// keys as its JSON form, e.g. run.summary.solution_found.
func luaLastRun(L *lua.LState) int {
	sc := getShell(L)
	if sc.last == nil {
		L.Push(lua.LString("ERROR: " + errNoRun.Error()))
		return 1
	}
	bts, err := json.Marshal(sc.last.run)
	if err != nil {
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	v, err := luajson.Decode(L, bts)
	if err != nil {
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(v)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	// Scripts can local json = require("json") to encode or decode.
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("agentsearch_shell", lsc)
	L.SetGlobal("agentsearch_set", L.NewFunction(luaCommand("set", (*ShellController).set)))
	L.SetGlobal("agentsearch_miu", L.NewFunction(luaCommand("miu", (*ShellController).miu)))
	L.SetGlobal("agentsearch_maze", L.NewFunction(luaCommand("maze", (*ShellController).maze)))
	L.SetGlobal("agentsearch_compare", L.NewFunction(luaCommand("compare", (*ShellController).compare)))
	L.SetGlobal("agentsearch_path", L.NewFunction(luaCommand("path", (*ShellController).path)))
	L.SetGlobal("agentsearch_export", L.NewFunction(luaCommand("export", (*ShellController).export)))
	L.SetGlobal("agentsearch_last_run", L.NewFunction(luaLastRun))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
