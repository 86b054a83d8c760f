package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations: no file loading and
// no modules beyond the safe built-ins and those registered by the host.
type Sandbox struct {
	L *lua.LState

	allowed map[string]bool
}

// safeModules are built-in modules scripts may require.
var safeModules = []string{"string", "table", "math"}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	s := &Sandbox{L: L, allowed: make(map[string]bool)}
	for _, name := range safeModules {
		s.allowed[name] = true
	}
	return s
}

// Allow lets scripts require the preloaded module name.
func (s *Sandbox) Allow(name string) {
	s.allowed[name] = true
}

// Allowed reports whether scripts may require name.
func (s *Sandbox) Allowed(name string) bool {
	return s.allowed[name]
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	// Remove functions that load code from outside the script
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafeRequire()
}

// installSafeRequire clears the package search paths and replaces require
// with a version that only loads allowed modules.
func (s *Sandbox) installSafeRequire() {
	if pkgTable, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkgTable, "path", lua.LString(""))
		s.L.SetField(pkgTable, "cpath", lua.LString(""))

		// Only preloaded modules can be found.
		if loaders, ok := s.L.GetField(pkgTable, "loaders").(*lua.LTable); ok {
			for i := loaders.Len(); i > 1; i-- {
				loaders.Remove(i)
			}
		}
	}

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !s.allowed[modName] {
			// L.RaiseError does a longjmp, so code after it is unreachable.
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
