package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/calloutls/internal/callout"
	"github.com/dshills/calloutls/internal/logging"
	"github.com/dshills/calloutls/internal/settings"
	"github.com/dshills/calloutls/internal/suggest"
)

// ModuleName is the global and require name of the callout module.
const ModuleName = "callout"

// Module exposes a suggestion session to Lua:
//
//	callout.trigger(text, col [, line]) -> query, start, end | nil
//	callout.suggest(query)              -> { entry, ... }
//	callout.select(id)                  -> true | nil, err
//	callout.complete()                  -> { entry, ... } | nil
//	callout.reload([settings])          -> number of entries
//	callout.entries()                   -> { entry, ... }
//	callout.state()                     -> "idle" | "suggesting"
//
// Columns are zero-based rune offsets. An entry is a table with id, icon,
// glyph, color ("r, g, b") and hex fields.
type Module struct {
	session *suggest.Session
	logger  *logging.Logger
}

// NewModule creates a module bound to session.
func NewModule(session *suggest.Session, logger *logging.Logger) *Module {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Module{session: session, logger: logger}
}

// Install registers the module in s.
func (m *Module) Install(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"trigger":  m.trigger,
		"suggest":  m.suggest,
		"select":   m.selectEntry,
		"complete": m.complete,
		"reload":   m.reload,
		"entries":  m.entries,
		"state":    m.state,
	})
}

func (m *Module) trigger(L *lua.LState) int {
	text := L.CheckString(1)
	col := L.CheckInt(2)
	line := L.OptInt(3, 0)

	span, ok := m.session.OnTrigger(suggest.Position{Line: line, Col: col}, text)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(span.Query))
	L.Push(lua.LNumber(span.Start))
	L.Push(lua.LNumber(span.End))
	return 3
}

func (m *Module) suggest(L *lua.LState) int {
	query := L.OptString(1, "")
	L.Push(entriesTable(L, m.session.Suggestions(query)))
	return 1
}

func (m *Module) selectEntry(L *lua.LState) int {
	id := L.CheckString(1)
	entry, ok := m.session.Catalog().Lookup(id)
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LString("unknown callout type: " + id))
		return 2
	}
	if err := m.session.Select(entry); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *Module) complete(L *lua.LState) int {
	entries, ok := m.session.Complete()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(entriesTable(L, entries))
	return 1
}

func (m *Module) reload(L *lua.LState) int {
	var src *settings.Callouts
	if tbl, ok := L.Get(1).(*lua.LTable); ok {
		src = settingsFromTable(NewBridge(L), tbl)
	}
	m.session.Reload(src)
	m.logger.Debug("callouts reloaded from lua (custom settings: %t)", src != nil)
	L.Push(lua.LNumber(m.session.Catalog().Len()))
	return 1
}

func (m *Module) entries(L *lua.LState) int {
	L.Push(entriesTable(L, m.session.Catalog().Entries()))
	return 1
}

func (m *Module) state(L *lua.LState) int {
	L.Push(lua.LString(m.session.State().String()))
	return 1
}

func entriesTable(L *lua.LState, entries []callout.Entry) *lua.LTable {
	t := L.CreateTable(len(entries), 0)
	for i, e := range entries {
		t.RawSetInt(i+1, entryTable(L, e))
	}
	return t
}

func entryTable(L *lua.LState, e callout.Entry) *lua.LTable {
	t := L.CreateTable(0, 5)
	t.RawSetString("id", lua.LString(e.ID))
	t.RawSetString("icon", lua.LString(e.Icon))
	t.RawSetString("glyph", lua.LString(suggest.Glyph(e.Icon)))
	t.RawSetString("color", lua.LString(e.Color.String()))
	t.RawSetString("hex", lua.LString(e.Color.Hex()))
	return t
}

// settingsFromTable decodes a callouts section from a Lua table. The table
// may be the section itself ({custom = ..., settings = ...}) or a document
// containing one under callouts.
func settingsFromTable(b *Bridge, tbl *lua.LTable) *settings.Callouts {
	root, ok := b.ToGoValue(tbl).(map[string]any)
	if !ok {
		return nil
	}
	if src := settings.FromMap(root); src != nil {
		return src
	}
	return settings.FromMap(map[string]any{"callouts": root})
}
