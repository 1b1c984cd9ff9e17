package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbmend/nbmend/nb"
)

func dirtyNotebook(t *testing.T) *nb.Notebook {
	t.Helper()
	count := 7
	n := &nb.Notebook{NBFormat: 4, NBFormatMinor: 5}
	n.Metadata.Set("kernelspec", map[string]any{"name": "python3"})
	n.Metadata.Set("widgets", map[string]any{"state": "..."})
	cell := nb.Cell{
		Type:           nb.CodeCell,
		Source:         nb.SourceText("x = 1"),
		ExecutionCount: &count,
		Outputs: []nb.Output{
			{Type: nb.StreamOutput, Name: "stdout", Text: nb.SourceText("hi")},
		},
	}
	cell.Metadata.Set("collapsed", true)
	cell.Extras.Set("id", "abc")
	n.Cells = []nb.Cell{cell}
	return n
}

func writeNotebook(t *testing.T, path string, n *nb.Notebook) {
	t.Helper()
	d, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, d, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.ipynb")
	writeNotebook(t, in, dirtyNotebook(t))
	out := WritePath(in, "", "_clean")

	clean, err := Clear(in, out, Options{
		NotebookMetaKeep:    []string{"kernelspec"},
		ClearCellFields:     []string{"id"},
		ClearExecutionCount: true,
		ClearOutputs:        true,
	})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if clean {
		t.Errorf("Clear() reported a dirty notebook as clean")
	}
	got, err := nb.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", out, err)
	}
	if !got.Metadata.Has("kernelspec") {
		t.Errorf("kept notebook metadata removed")
	}
	if got.Metadata.Has("widgets") {
		t.Errorf("unwanted notebook metadata kept")
	}
	c := got.Cells[0]
	if c.Metadata.Len() != 0 {
		t.Errorf("cell metadata kept: %v", c.Metadata.Keys())
	}
	if c.Extras.Has("id") {
		t.Errorf("cell id kept")
	}
	if c.ExecutionCount != nil {
		t.Errorf("execution count kept")
	}
	if len(c.Outputs) != 0 {
		t.Errorf("outputs kept")
	}
	// The original is untouched when writing elsewhere.
	orig, err := nb.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	if !orig.Metadata.Has("widgets") {
		t.Errorf("input file was modified")
	}
}

func TestClearKeepOptions(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.ipynb")
	n := dirtyNotebook(t)
	// One unkept key keeps the notebook dirty so the result is written.
	n.Metadata.Set("varInspector", map[string]any{"window": "open"})
	writeNotebook(t, in, n)
	out := filepath.Join(dir, "b.ipynb")

	clean, err := Clear(in, out, Options{
		NotebookMetaKeep: []string{"kernelspec", "widgets"},
		CellMetaKeep:     []string{"collapsed"},
	})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if clean {
		t.Fatalf("Clear() reported a dirty notebook as clean")
	}
	got, err := nb.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Metadata.Has("widgets") {
		t.Errorf("kept notebook metadata removed")
	}
	if got.Metadata.Has("varInspector") {
		t.Errorf("unkept notebook metadata kept")
	}
	c := got.Cells[0]
	if !c.Metadata.Has("collapsed") {
		t.Errorf("kept cell metadata removed")
	}
	if c.ExecutionCount == nil {
		t.Errorf("execution count removed without ClearExecutionCount")
	}
	if len(c.Outputs) == 0 {
		t.Errorf("outputs removed without ClearOutputs")
	}
	if !c.Extras.Has("id") {
		t.Errorf("id removed without ClearCellFields")
	}
}

func TestClearCheck(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.ipynb")
	writeNotebook(t, in, dirtyNotebook(t))
	out := filepath.Join(dir, "b.ipynb")

	clean, err := Clear(in, out, Options{Check: true, ClearExecutionCount: true})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if clean {
		t.Errorf("check reported dirty notebook as clean")
	}
	if _, err := os.Stat(out); err == nil {
		t.Errorf("check mode wrote a file")
	}
}

func TestClearAlreadyClean(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.ipynb")
	n := &nb.Notebook{NBFormat: 4, NBFormatMinor: 5, Cells: []nb.Cell{}}
	writeNotebook(t, in, n)
	out := filepath.Join(dir, "b.ipynb")

	clean, err := Clear(in, out, Options{ClearExecutionCount: true, ClearOutputs: true})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if !clean {
		t.Errorf("clean notebook reported dirty")
	}
	if _, err := os.Stat(out); err == nil {
		t.Errorf("clean notebook was rewritten")
	}
}

func TestClearAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ipynb")
	b := filepath.Join(dir, "b.ipynb")
	writeNotebook(t, a, dirtyNotebook(t))
	writeNotebook(t, b, &nb.Notebook{NBFormat: 4, NBFormatMinor: 5, Cells: []nb.Cell{}})

	calls := 0
	checks, err := ClearAll(
		[]string{a, b},
		[]string{WritePath(a, "out_", ""), WritePath(b, "out_", "")},
		Options{ClearExecutionCount: true},
		func() { calls++ },
	)
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("progress calls = %d, want 2", calls)
	}
	if len(checks) != 2 || checks[0] || !checks[1] {
		t.Errorf("checks = %v, want [false true]", checks)
	}

	if _, err := ClearAll([]string{a}, nil, Options{}, nil); err == nil {
		t.Errorf("ClearAll() with mismatched paths succeeded")
	}
}

func TestWritePath(t *testing.T) {
	tests := []struct {
		path, prefix, suffix, want string
	}{
		{"a.ipynb", "", "", "a.ipynb"},
		{"a.ipynb", "clean_", "", "clean_a.ipynb"},
		{"a.ipynb", "", "_clean", "a_clean.ipynb"},
		{filepath.Join("d", "a.ipynb"), "p_", "_s", filepath.Join("d", "p_a_s.ipynb")},
	}
	for _, tt := range tests {
		if got := WritePath(tt.path, tt.prefix, tt.suffix); got != tt.want {
			t.Errorf("WritePath(%q, %q, %q) = %q, want %q", tt.path, tt.prefix, tt.suffix, got, tt.want)
		}
	}
}
