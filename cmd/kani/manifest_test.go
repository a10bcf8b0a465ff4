package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "kani.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindKaniTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, ok, err := findKaniToml(nested)
	if err != nil || !ok {
		t.Fatalf("expected manifest, ok=%v err=%v", ok, err)
	}
	if filepath.Dir(found) != root {
		t.Fatalf("found %q, want manifest in %q", found, root)
	}
}

func TestFindKaniTomlMissing(t *testing.T) {
	_, ok, err := findKaniToml(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("empty tree must not find a manifest")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[verify]
unstable = ["ghost-state", "float-lib"]
ignore-global-asm = true
max-diagnostics = 25
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Fatalf("unexpected name %q", cfg.Package.Name)
	}
	if len(cfg.Verify.Unstable) != 2 || !cfg.Verify.IgnoreGlobalAsm || cfg.Verify.MaxDiagnostics != 25 {
		t.Fatalf("unexpected verify config %+v", cfg.Verify)
	}
}

func TestLoadProjectConfigRequiresPackageName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[verify]\nignore-global-asm = true\n")
	if _, err := loadProjectConfig(path); err == nil {
		t.Fatalf("missing [package] must be rejected")
	}

	path = writeManifest(t, dir, "[package]\nname = \"  \"\n")
	if _, err := loadProjectConfig(path); err == nil {
		t.Fatalf("blank name must be rejected")
	}
}
