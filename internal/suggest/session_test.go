package suggest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/calloutls/internal/callout"
	"github.com/dshills/calloutls/internal/config/notify"
	"github.com/dshills/calloutls/internal/logging"
	"github.com/dshills/calloutls/internal/settings"
	"github.com/dshills/calloutls/internal/trigger"
)

func readySession(text string) (*Session, *MemoryEditor) {
	ed := NewMemoryEditor(text)
	s := New(ed)
	s.Ready(nil)
	return s, ed
}

func TestSession_InitialState(t *testing.T) {
	s := New(NewMemoryEditor(""))
	if s.State() != StateIdle {
		t.Errorf("State() = %v, want idle", s.State())
	}
	if s.Catalog().Len() != 0 {
		t.Error("catalog should be empty before Ready")
	}
	if _, ok := s.Context(); ok {
		t.Error("Context() should report no trigger")
	}
}

func TestState_String(t *testing.T) {
	if StateIdle.String() != "idle" || StateSuggesting.String() != "suggesting" || State(9).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}

func TestSession_OnTrigger(t *testing.T) {
	s, _ := readySession("")

	span, ok := s.OnTrigger(Position{Line: 3, Col: 6}, "> [!no")
	if !ok {
		t.Fatal("expected trigger")
	}
	if span != (trigger.Span{Start: 4, End: 6, Query: "no"}) {
		t.Errorf("span = %+v", span)
	}
	if s.State() != StateSuggesting {
		t.Errorf("State() = %v, want suggesting", s.State())
	}
	ctx, ok := s.Context()
	if !ok || ctx.Line != 3 || ctx.Span != span {
		t.Errorf("Context() = %+v, %v", ctx, ok)
	}

	if _, ok := s.OnTrigger(Position{Line: 3, Col: 2}, "> ["); ok {
		t.Error("cursor before marker end should not trigger")
	}
	if s.State() != StateIdle {
		t.Errorf("State() = %v, want idle after miss", s.State())
	}
}

func TestSession_OnTrigger_Indented(t *testing.T) {
	s, ed := readySession("  > [!wa")

	span, ok := s.OnTrigger(Position{Line: 0, Col: 8}, ed.Line(0))
	if !ok || span.Query != "wa" || span.Start != 4 || span.End != 6 {
		t.Fatalf("OnTrigger = %+v, %v", span, ok)
	}

	entry, _ := s.Catalog().Lookup("warning")
	if err := s.Select(entry); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if got := ed.Text(); got != "  > [!warning" {
		t.Errorf("Text() = %q", got)
	}
	if got := ed.Cursor(); got != (Position{0, 13}) {
		t.Errorf("Cursor() = %+v, want {0 13}", got)
	}
}

func TestSession_Suggestions(t *testing.T) {
	s, _ := readySession("")

	all := s.Suggestions("")
	if len(all) != 16 {
		t.Fatalf("Suggestions(\"\") = %d entries, want 16", len(all))
	}
	for i, e := range callout.Defaults() {
		if all[i] != e {
			t.Errorf("Suggestions(\"\")[%d] = %+v, want %+v", i, all[i], e)
		}
	}

	got := s.Suggestions("SU")
	if len(got) != 2 || got[0].ID != "success" || got[1].ID != "summary" {
		t.Errorf("Suggestions(SU) = %v", got)
	}
	if got := s.Suggestions("zz"); len(got) != 0 {
		t.Errorf("Suggestions(zz) = %v", got)
	}
}

func TestSession_Select(t *testing.T) {
	s, ed := readySession("intro\n> [!not]")

	if _, ok := s.OnTrigger(Position{Line: 1, Col: 7}, ed.Line(1)); !ok {
		t.Fatal("expected trigger")
	}
	ctx, _ := s.Context()
	if ctx.Span != (trigger.Span{Start: 4, End: 7, Query: "not"}) {
		t.Fatalf("span = %+v", ctx.Span)
	}

	note, _ := s.Catalog().Lookup("note")
	if err := s.Select(note); err != nil {
		t.Fatalf("Select error: %v", err)
	}

	if got := ed.Line(1); got != "> [!note]" {
		t.Errorf("line = %q, want %q", got, "> [!note]")
	}
	if got := ed.Cursor(); got != (Position{Line: 1, Col: 8}) {
		t.Errorf("cursor = %+v, want {1 8}", got)
	}
	if s.State() != StateIdle {
		t.Error("session should be idle after Select")
	}

	if err := s.Select(note); !errors.Is(err, ErrNotSuggesting) {
		t.Errorf("second Select error = %v, want ErrNotSuggesting", err)
	}
}

func TestSession_Select_CursorBeforeStart(t *testing.T) {
	s, ed := readySession("> [")

	span, ok := s.OnTrigger(Position{Line: 0, Col: 3}, ed.Line(0))
	if !ok || span.Query != "" || span.Start != 4 || span.End != 3 {
		t.Fatalf("OnTrigger = %+v, %v", span, ok)
	}
	if n := len(s.Suggestions(span.Query)); n != 16 {
		t.Errorf("empty query matched %d entries, want 16", n)
	}

	tip, _ := s.Catalog().Lookup("tip")
	if err := s.Select(tip); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if got := ed.Text(); got != "> [tip" {
		t.Errorf("Text() = %q", got)
	}
	if got := ed.Cursor(); got != (Position{0, 6}) {
		t.Errorf("Cursor() = %+v, want {0 6}", got)
	}
}

type failingEditor struct {
	*MemoryEditor
}

func (f failingEditor) ReplaceRange(string, Position, Position) error {
	return ErrLineOutOfRange
}

func TestSession_Select_EditorError(t *testing.T) {
	ed := failingEditor{NewMemoryEditor("> [!no")}
	s := New(ed)
	s.Ready(nil)

	s.OnTrigger(Position{Line: 0, Col: 6}, "> [!no")
	err := s.Select(callout.Entry{ID: "note"})
	if !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Select error = %v", err)
	}
	if ed.Cursor() != (Position{}) {
		t.Error("cursor moved after failed edit")
	}
}

func TestSession_NoEditor(t *testing.T) {
	s := New(nil)
	s.Ready(nil)

	if _, ok := s.Complete(); ok {
		t.Error("Complete() without an editor should not trigger")
	}
	if _, ok := s.OnTrigger(Position{Line: 0, Col: 6}, "> [!ti"); !ok {
		t.Fatal("OnTrigger should work without an editor")
	}
	if got := s.Suggestions("ti"); len(got) != 1 || got[0].ID != "tip" {
		t.Errorf("Suggestions(ti) = %v, want [tip]", got)
	}
	if err := s.Select(callout.Entry{ID: "tip"}); !errors.Is(err, ErrNoEditor) {
		t.Errorf("Select error = %v, want ErrNoEditor", err)
	}
}

func TestSession_Complete(t *testing.T) {
	s, ed := readySession("> [!ex")
	ed.SetCursor(Position{0, 6})

	entries, ok := s.Complete()
	if !ok || len(entries) != 1 || entries[0].ID != "example" {
		t.Errorf("Complete() = %v, %v", entries, ok)
	}

	ed.SetText("plain")
	if _, ok := s.Complete(); ok {
		t.Error("Complete() on plain text should not trigger")
	}
}

func TestSession_Render(t *testing.T) {
	s, _ := readySession("")
	warning, _ := s.Catalog().Lookup("warning")

	row := s.Render(warning)
	if row.Label != "warning" || row.Icon != "lucide-alert-triangle" || row.Glyph != "⚠" {
		t.Errorf("row = %+v", row)
	}
	if row.CSSColor() != "rgb(255, 171, 0)" {
		t.Errorf("CSSColor() = %q", row.CSSColor())
	}
}

func TestSession_WatchReloads(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	s := New(NewMemoryEditor(""), WithLogger(log))
	s.Ready(nil)
	if s.Catalog().Len() != 16 {
		t.Fatal("expected defaults after Ready")
	}

	n := notify.New()
	defer n.Close()

	src := &settings.Callouts{Custom: []string{"custom1"}}
	sub := s.Watch(n, func() *settings.Callouts { return src })

	n.NotifyReload("test")
	if s.Catalog().Len() != 17 {
		t.Errorf("catalog has %d entries after reload, want 17", s.Catalog().Len())
	}

	sub.Unsubscribe()
	src = nil
	n.NotifyReload("test")
	if s.Catalog().Len() != 17 {
		t.Error("catalog reloaded after Unsubscribe")
	}

	if !strings.Contains(buf.String(), "reloading callouts") {
		t.Errorf("reload not logged: %q", buf.String())
	}
}

func TestSession_SharedCatalog(t *testing.T) {
	cat := callout.NewCatalog()
	cat.Load(nil)

	s := New(NewMemoryEditor(""), WithCatalog(cat), WithLogger(nil))
	if s.Catalog() != cat {
		t.Error("WithCatalog not applied")
	}
	if len(s.Suggestions("n")) != 1 {
		t.Error("shared catalog not used for suggestions")
	}
}
