package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-ripple/ripple/pkg/tree"
)

func writeProject(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	gomod := "module github.com/example/waves\n\ngo 1.24.0\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(dir, "ripple.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatalf("write ripple.yaml: %v", err)
		}
	}
	return dir
}

func TestResolve_DefaultsWithoutYAML(t *testing.T) {
	dir := writeProject(t, "")
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.ModulePath != "github.com/example/waves" {
		t.Fatalf("module path = %q", r.ModulePath)
	}
	if r.AppName != "waves" {
		t.Fatalf("app name = %q, want waves", r.AppName)
	}
	for _, p := range tree.Phases() {
		if r.Parallel.Enabled(p) {
			t.Fatalf("phase %v parallel by default", p)
		}
	}
}

func TestResolve_ReadsYAML(t *testing.T) {
	dir := writeProject(t, "app:\n  name: surf\nparallel:\n  render: true\n  update: false\n")
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.AppName != "surf" {
		t.Fatalf("app name = %q, want surf", r.AppName)
	}
	if !r.Parallel.Enabled(tree.PhaseRender) {
		t.Fatalf("render should be parallel")
	}
	if r.Parallel.Enabled(tree.PhaseUpdate) {
		t.Fatalf("update should be sequential")
	}
}

func TestResolve_RejectsUnknownPhase(t *testing.T) {
	dir := writeProject(t, "parallel:\n  repaint: true\n")
	if _, err := Resolve(dir); err == nil {
		t.Fatalf("expected error for unknown phase name")
	}
}

func TestResolve_MissingGoMod(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Fatalf("expected error without go.mod")
	}
}
