package libdiff

import (
	"errors"
	"slices"
	"testing"

	"github.com/nbmend/nbmend/nb"
)

func notebook(minor int, cells ...nb.Cell) *nb.Notebook {
	n := &nb.Notebook{NBFormat: 4, NBFormatMinor: minor, Cells: cells}
	if cells == nil {
		n.Cells = []nb.Cell{}
	}
	return n
}

func TestDiffRecordsTypeMismatch(t *testing.T) {
	_, err := DiffRecords(notebook(5), &nb.NotebookMetadata{})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("DiffRecords() error = %v, want ErrTypeMismatch", err)
	}
}

func TestDiffNotebooks(t *testing.T) {
	a := notebook(5, mdCell("# a"))
	a.Metadata.Set("kernelspec", map[string]any{"name": "python3"})
	b := notebook(4, mdCell("# a"), codeCell("x"))
	b.Metadata.Set("kernelspec", map[string]any{"name": "julia"})

	d, err := DiffRecords(a, b)
	if err != nil {
		t.Fatalf("DiffRecords() error = %v", err)
	}
	if d.RecordType() != "JupyterNotebook" {
		t.Errorf("RecordType() = %s", d.RecordType())
	}
	want := []string{"nbformat", "nbformat_minor", "metadata", "cells"}
	if got := d.FieldNames(); !slices.Equal(got, want) {
		t.Errorf("FieldNames() = %v, want %v", got, want)
	}

	fd, ok := d.Field("nbformat")
	if !ok || fd.IsNested() {
		t.Fatalf("nbformat field = %+v, want raw pair", fd)
	}
	if fd.Left != 4 || fd.Right != 4 {
		t.Errorf("nbformat pair = (%v, %v), want (4, 4)", fd.Left, fd.Right)
	}

	fd, _ = d.Field("nbformat_minor")
	if fd.Left != 5 || fd.Right != 4 {
		t.Errorf("nbformat_minor pair = (%v, %v), want (5, 4)", fd.Left, fd.Right)
	}

	fd, _ = d.Field("metadata")
	if !fd.IsNested() || fd.Nested == nil {
		t.Fatalf("metadata field is not a nested diff")
	}
	if fd.Nested.RecordType() != "NotebookMetadata" {
		t.Errorf("nested metadata type = %s", fd.Nested.RecordType())
	}

	fd, _ = d.Field("cells")
	if !fd.IsNested() || fd.Nested != nil {
		t.Fatalf("cells field is not a cell alignment")
	}
	checkCovers(t, fd.Cells, a.Cells, b.Cells)
}

func TestDiffMetadataFieldUnion(t *testing.T) {
	a := &nb.NotebookMetadata{}
	a.Set("shared", 1)
	a.Set("only_a", "x")
	b := &nb.NotebookMetadata{}
	b.Set("shared", 2)
	b.Set("only_b", "y")

	d, err := DiffRecords(a, b)
	if err != nil {
		t.Fatalf("DiffRecords() error = %v", err)
	}
	want := []string{"shared", "only_a", "only_b"}
	if got := d.FieldNames(); !slices.Equal(got, want) {
		t.Errorf("FieldNames() = %v, want %v", got, want)
	}
	fd, _ := d.Field("only_a")
	if fd.Left != "x" || fd.Right != nil {
		t.Errorf("only_a pair = (%v, %v), want (x, <nil>)", fd.Left, fd.Right)
	}
	fd, _ = d.Field("only_b")
	if fd.Left != nil || fd.Right != "y" {
		t.Errorf("only_b pair = (%v, %v), want (<nil>, y)", fd.Left, fd.Right)
	}
}
