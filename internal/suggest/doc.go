// Package suggest wires callout completion into an editor host.
//
// A Session is the composition root: it owns the callout catalog, asks the
// trigger package whether the cursor sits in a callout header, filters the
// catalog by the typed prefix, renders rows for the host's popup, and
// performs the replacement when the user picks an entry.
//
// The host drives a Session from its single event goroutine:
//
//	s := suggest.New(editor, suggest.WithLogger(log))
//	s.Ready(src)                                  // host finished starting
//	if span, ok := s.OnTrigger(cursor, line); ok {
//	    for _, e := range s.Suggestions(span.Query) {
//	        popup.Add(s.Render(e))
//	    }
//	}
//	_ = s.Select(chosen)
//
// Reload may be called from any goroutine; the catalog swap is atomic.
package suggest
