package suggest

import (
	"unicode/utf8"

	"github.com/dshills/calloutls/internal/callout"
	"github.com/dshills/calloutls/internal/config/notify"
	"github.com/dshills/calloutls/internal/logging"
	"github.com/dshills/calloutls/internal/settings"
	"github.com/dshills/calloutls/internal/trigger"
)

// Provider is the capability a host suggestion popup drives.
type Provider interface {
	OnTrigger(cursor Position, line string) (trigger.Span, bool)
	Suggestions(query string) []callout.Entry
	Render(entry callout.Entry) Row
	Select(entry callout.Entry) error
}

// State is the session's popup state.
type State int

const (
	// StateIdle means no callout header is being typed.
	StateIdle State = iota
	// StateSuggesting means the last OnTrigger call matched.
	StateSuggesting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSuggesting:
		return "suggesting"
	default:
		return "unknown"
	}
}

// Context is the trigger that put the session into StateSuggesting.
// Span offsets are relative to the line with its indentation removed;
// Indent is the number of runes removed.
type Context struct {
	Line   int
	Indent int
	Span   trigger.Span
}

// SourceFunc fetches the current callout settings. It returns nil when the
// settings are unavailable.
type SourceFunc func() *settings.Callouts

// Session implements Provider for one editor.
type Session struct {
	editor  Editor
	catalog *callout.Catalog
	logger  *logging.Logger

	state State
	ctx   Context
}

var _ Provider = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog shares an existing catalog instead of creating one.
func WithCatalog(c *callout.Catalog) Option {
	return func(s *Session) {
		if c != nil {
			s.catalog = c
		}
	}
}

// New creates an idle session with an empty catalog. A session created
// with a nil editor can trigger and suggest but not Select; the language
// server uses one that way and lets the client apply the edit.
func New(editor Editor, opts ...Option) *Session {
	s := &Session{
		editor:  editor,
		catalog: callout.NewCatalog(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the session's catalog.
func (s *Session) Catalog() *callout.Catalog {
	return s.catalog
}

// State returns the current popup state.
func (s *Session) State() State {
	return s.state
}

// Context returns the active trigger, if any.
func (s *Session) Context() (Context, bool) {
	return s.ctx, s.state == StateSuggesting
}

// Ready populates the catalog once the host has finished starting.
func (s *Session) Ready(src *settings.Callouts) {
	entries := s.catalog.Load(src)
	s.logger.Info("callout catalog ready (%d entries, custom settings: %t)", len(entries), src != nil)
}

// Reload rebuilds the catalog after a settings change. Safe to call from
// any goroutine.
func (s *Session) Reload(src *settings.Callouts) {
	entries := s.catalog.Load(src)
	s.logger.Debug("callout catalog reloaded (%d entries)", len(entries))
}

// Watch reloads the catalog from source whenever n publishes a change to
// the callouts settings. Unsubscribe the returned subscription when the
// session ends.
func (s *Session) Watch(n *notify.Notifier, source SourceFunc) *notify.Subscription {
	return n.SubscribePath(notify.PathCallouts, func(change notify.Change) {
		s.logger.Debug("settings changed (%s from %s), reloading callouts", change.Type, change.Source)
		s.Reload(source())
	})
}

// OnTrigger evaluates line at cursor. A match moves the session to
// StateSuggesting; anything else returns it to StateIdle.
//
// cursor.Col is a column on line as given. Leading indentation is removed
// before evaluation and the returned span is relative to the stripped line.
func (s *Session) OnTrigger(cursor Position, line string) (trigger.Span, bool) {
	indent := trigger.Indent(line)
	span, ok := trigger.Evaluate(line, cursor.Col-indent)
	if !ok {
		s.state = StateIdle
		s.ctx = Context{}
		return trigger.Span{}, false
	}

	s.state = StateSuggesting
	s.ctx = Context{Line: cursor.Line, Indent: indent, Span: span}
	s.logger.Debug("callout trigger at %d:%d, query %q", cursor.Line, cursor.Col, span.Query)
	return span, true
}

// Suggestions returns the catalog entries matching query by prefix.
func (s *Session) Suggestions(query string) []callout.Entry {
	return s.catalog.Match(query)
}

// Render builds the popup row for entry.
func (s *Session) Render(entry callout.Entry) Row {
	return NewRow(entry)
}

// Select replaces the trigger span with entry's identifier and moves the
// cursor right after it. The session returns to StateIdle.
func (s *Session) Select(entry callout.Entry) error {
	if s.state != StateSuggesting {
		return ErrNotSuggesting
	}
	if s.editor == nil {
		return ErrNoEditor
	}

	ctx := s.ctx
	s.state = StateIdle
	s.ctx = Context{}

	start, end := ctx.Span.Start, ctx.Span.End
	if end < start {
		start, end = end, start
	}
	start += ctx.Indent
	end += ctx.Indent

	from := Position{Line: ctx.Line, Col: start}
	to := Position{Line: ctx.Line, Col: end}
	if err := s.editor.ReplaceRange(entry.ID, from, to); err != nil {
		return err
	}
	s.editor.SetCursor(Position{Line: ctx.Line, Col: start + utf8.RuneCountInString(entry.ID)})
	return nil
}

// Complete runs OnTrigger at the editor's cursor and returns the matching
// entries. It is the whole per-keystroke cycle for hosts that do not split
// it up.
func (s *Session) Complete() ([]callout.Entry, bool) {
	if s.editor == nil {
		return nil, false
	}
	cursor := s.editor.Cursor()
	span, ok := s.OnTrigger(cursor, s.editor.Line(cursor.Line))
	if !ok {
		return nil, false
	}
	return s.Suggestions(span.Query), true
}
