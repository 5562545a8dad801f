package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fathomtext/fathom/pkg/types"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func TestCategoriesCommand(t *testing.T) {
	out := runCLI(t, "categories")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(types.Categories) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(types.Categories), out)
	}
	if lines[0] != types.CategoryIdentity {
		t.Errorf("first category = %q, want %q", lines[0], types.CategoryIdentity)
	}
}

func TestVersionCommand(t *testing.T) {
	out := runCLI(t, "version")
	if !strings.HasPrefix(out, "fathom ") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestExtractCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("I want to learn Go"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runCLI(t, "extract", path)

	var resp types.ContextResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(resp.Goals) != 1 {
		t.Fatalf("got %d goals, want 1: %+v", len(resp.Goals), resp.Goals)
	}
	if resp.Meta.Source != path {
		t.Errorf("source = %q, want %q", resp.Meta.Source, path)
	}
}

func TestExtractCommandSingleCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("I want to learn Go"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runCLI(t, "extract", "--category", "goals", path)

	var goals []types.Goal
	if err := json.Unmarshal([]byte(out), &goals); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(goals) != 1 || goals[0].Description != "learn Go" {
		t.Fatalf("unexpected goals: %+v", goals)
	}
}
