package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
verbose: true
fix:
  metadata_first: false
  cells_first: true
  ignore_fields:
    - id
meta:
  notebook_meta_keep:
    - kernelspec
  remove_outputs: true
  suffix: _clean
assert:
  recipes:
    - seq-exec
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Verbose {
		t.Errorf("verbose = false, want true")
	}
	if cfg.Fix.MetadataFirst == nil || *cfg.Fix.MetadataFirst {
		t.Errorf("fix.metadata_first = %v, want false", cfg.Fix.MetadataFirst)
	}
	if cfg.Fix.CellsFirst == nil || !*cfg.Fix.CellsFirst {
		t.Errorf("fix.cells_first = %v, want true", cfg.Fix.CellsFirst)
	}
	if len(cfg.Fix.IgnoreFields) != 1 || cfg.Fix.IgnoreFields[0] != "id" {
		t.Errorf("fix.ignore_fields = %v", cfg.Fix.IgnoreFields)
	}
	if !cfg.Meta.RemoveOutputs || cfg.Meta.Suffix != "_clean" {
		t.Errorf("meta = %+v", cfg.Meta)
	}
	if len(cfg.Assert.Recipes) != 1 || cfg.Assert.Recipes[0] != "seq-exec" {
		t.Errorf("assert.recipes = %v", cfg.Assert.Recipes)
	}
}

func TestLoadUnsetPointers(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("verbose: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Fix.MetadataFirst != nil || cfg.Fix.CellsFirst != nil {
		t.Errorf("unset booleans decoded as set: %+v", cfg.Fix)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("fix: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load() of broken yaml succeeded")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, []byte("verbose: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Find(sub)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != path {
		t.Errorf("Find() = %s, want %s", got, path)
	}
}

func TestFindMissing(t *testing.T) {
	if _, err := Find(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Find() error = %v, want ErrNotExist", err)
	}
}

func TestDiscoverMissing(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Verbose || cfg.Fix.MetadataFirst != nil {
		t.Errorf("Discover() without a file = %+v, want zero config", cfg)
	}
}
