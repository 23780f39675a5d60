package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withWorkingDir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	withWorkingDir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReplPrompt != "> " {
		t.Errorf("ReplPrompt = %q, want %q", cfg.ReplPrompt, "> ")
	}
	if cfg.MaxCallDepth != 0 {
		t.Errorf("MaxCallDepth = %d, want 0 (interpreter default)", cfg.MaxCallDepth)
	}
	if !cfg.NativesAllowed("anything") {
		t.Error("zero-config should allow every native")
	}
}

func TestLoadParsesGloxYAML(t *testing.T) {
	dir := t.TempDir()
	withWorkingDir(t, dir)

	content := `maxCallDepth: 500
natives:
  - clock
  - abs
replPrompt: "glox> "
`
	if err := os.WriteFile(filepath.Join(dir, "glox.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCallDepth != 500 {
		t.Errorf("MaxCallDepth = %d, want 500", cfg.MaxCallDepth)
	}
	if cfg.ReplPrompt != "glox> " {
		t.Errorf("ReplPrompt = %q, want %q", cfg.ReplPrompt, "glox> ")
	}
	if !cfg.NativesAllowed("clock") || !cfg.NativesAllowed("abs") {
		t.Error("explicitly listed natives should be allowed")
	}
	if cfg.NativesAllowed("getline") {
		t.Error("natives absent from an explicit allow-list should be rejected")
	}
	if cfg.Source != "glox.yaml" {
		t.Errorf("Source = %q, want %q", cfg.Source, "glox.yaml")
	}
}

func TestLoadMalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	withWorkingDir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "glox.yaml"), []byte("maxCallDepth: [not, a, number]"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected a parse error for malformed YAML")
	}
}

func TestGloxrcFallback(t *testing.T) {
	dir := t.TempDir()
	withWorkingDir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, ".gloxrc.yaml"), []byte("replPrompt: \"lox> \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReplPrompt != "lox> " {
		t.Errorf("ReplPrompt = %q, want %q", cfg.ReplPrompt, "lox> ")
	}
	if cfg.Source != ".gloxrc.yaml" {
		t.Errorf("Source = %q, want %q", cfg.Source, ".gloxrc.yaml")
	}
}

func TestLoadMissingFileSourceIsEmpty(t *testing.T) {
	withWorkingDir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty for default config", cfg.Source)
	}
}
