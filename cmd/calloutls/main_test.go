package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "calloutls "+version) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_Catalog(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "data.json")
	if err := os.WriteFile(settingsPath, []byte(`{"callouts": {"custom": ["todo"]}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{
		"-config", filepath.Join(dir, "config.toml"),
		"-settings", settingsPath,
		"-color", "never",
		"catalog",
	}
	if code := run(args, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	var entries []map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(entries) != 17 || entries[16]["id"] != "todo" {
		t.Errorf("entries = %v", entries)
	}
}

func TestRun_Serve(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	args := []string{"-config", filepath.Join(dir, "config.toml")}

	// The client closes the stream without messages.
	if code := run(args, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", stdout.String())
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.toml")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad log level", []string{"-log-level", "loud"}, "invalid log level"},
		{"unknown command", []string{"-config", config, "lint"}, "unknown command"},
		{"bad color", []string{"-config", config, "-color", "sometimes", "catalog"}, "invalid color mode"},
		{"unknown flag", []string{"-frobnicate"}, "frobnicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, strings.NewReader(""), &stdout, &stderr); code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", stderr.String(), tt.want)
			}
		})
	}
}
