package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if ValidLevel("bogus") || !ValidLevel("Warn") {
		t.Error("ValidLevel mismatch")
	}
}

func TestLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf, Prefix: "test"})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages written: %q", out)
	}
	if !strings.Contains(out, "[WARN] test: shown 1") || !strings.Contains(out, "[ERROR] test: shown 2") {
		t.Errorf("missing messages: %q", out)
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	child := l.WithComponent("catalog").WithField("entries", 16)
	child.Info("loaded")

	if got := buf.String(); !strings.Contains(got, "loaded {component=catalog, entries=16}") {
		t.Errorf("fields not rendered in order: %q", got)
	}

	buf.Reset()
	l.Info("plain")
	if strings.Contains(buf.String(), "component") {
		t.Error("parent logger picked up child fields")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	if l.Enabled(LevelError) {
		t.Error("Nop logger should be disabled")
	}
	l.Error("nothing")
	l.WithField("k", "v").Info("nothing")

	var nilLogger *Logger
	nilLogger.Info("nil receivers are ignored")
}
