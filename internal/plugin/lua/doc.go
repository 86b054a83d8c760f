// Package lua embeds a sandboxed Lua runtime that scripts the callout
// catalog.
//
// Scripts run in a State with the base, table, string and math libraries.
// File loading is removed and require only resolves modules the host
// registered. Each call is bounded by an execution timeout.
//
// # The callout module
//
// Module binds a suggest.Session into a State as the global table
// callout (also available through require("callout")):
//
//	local q = callout.trigger("> [!no", 6)
//	for _, e in ipairs(callout.suggest(q)) do
//	    print(e.id, e.hex)
//	end
//	callout.select("note")
//
//	callout.reload({ custom = { "todo" } })
//
// # Settings scripts
//
// LoadSettings accepts a Lua file as the callout settings source. The
// script returns a table shaped like the callout-manager data:
//
//	return {
//	    custom = { "todo" },
//	    settings = {
//	        todo = { { changes = { color = "255, 0, 0", icon = "lucide-check" } } },
//	    },
//	}
package lua
