package config

import (
	lua "github.com/yuin/gopher-lua"
)

// removedGlobals are stripped from every config VM. What remains (string,
// table, math and the basic functions) cannot touch the system.
var removedGlobals = []string{
	"os",
	"io",
	"require",
	"module",
	"package",
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"debug",
	"collectgarbage",
}

// newSandboxedVM returns a Lua state with the unsafe globals removed.
func newSandboxedVM() *lua.LState {
	L := lua.NewState(lua.Options{CallStackSize: 256})
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}
