package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals can load code from disk or strings outside the sandbox.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
}

// safeModules are the only names require resolves.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// Sandbox restricts a Lua state to side-effect free operations.
type Sandbox struct {
	L     *lua.LState
	print func(string)
}

// NewSandbox creates a sandbox for L. Script output from print is passed to
// printFn; a nil printFn discards it.
func NewSandbox(L *lua.LState, printFn func(string)) *Sandbox {
	return &Sandbox{L: L, print: printFn}
}

// openSafeLibraries opens only the side-effect free standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel, coroutine.
}

// Install applies the restrictions.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
	s.installRequire()
}

// installPrint routes print to the sandbox writer instead of stdout, which
// belongs to the terminal UI.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		if s.print != nil {
			s.print(strings.Join(parts, "\t"))
		}
		return 0
	}))
}

// installRequire replaces require with a lookup of the already opened safe
// modules. package is never opened so nothing can be loaded from disk.
func (s *Sandbox) installRequire() {
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !safeModules[name] {
			L.RaiseError("module %q is not available in sandbox", name)
			return 0
		}
		L.Push(L.GetGlobal(name))
		return 1
	}))
}
