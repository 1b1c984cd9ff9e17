package nb

import (
	"encoding/json"
	"fmt"
	"os"
)

// Notebook is the top-level document: two format-version fields, an
// open metadata record and the ordered cell list. Unknown top-level
// fields are rejected.
type Notebook struct {
	NBFormat      int
	NBFormatMinor int
	Metadata      NotebookMetadata
	Cells         []Cell
}

// Parse decodes and validates a notebook document.
func Parse(data []byte) (*Notebook, error) {
	n := &Notebook{}
	if err := json.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return n, nil
}

// ReadFile parses the notebook at path.
func ReadFile(path string) (*Notebook, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// WriteFile serializes the notebook to path. An existing file is only
// replaced when overwrite is set.
func (n *Notebook) WriteFile(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	d, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(d, '\n'), 0o644)
}

// Validate checks the document invariants, recursing into cells.
func (n *Notebook) Validate() error {
	if n.NBFormat < 1 {
		return fmt.Errorf("%w: nbformat must be a positive integer, got %d", ErrInvalidNotebook, n.NBFormat)
	}
	if n.NBFormatMinor < 0 {
		return fmt.Errorf("%w: nbformat_minor must not be negative, got %d", ErrInvalidNotebook, n.NBFormatMinor)
	}
	for i := range n.Cells {
		if err := n.Cells[i].Validate(); err != nil {
			return fmt.Errorf("%w: cell %d: %v", ErrInvalidNotebook, i, err)
		}
	}
	return nil
}

func (n Notebook) MarshalJSON() ([]byte, error) {
	w := &objWriter{}
	if n.Cells == nil {
		w.raw("cells", []byte("[]"))
	} else {
		w.field("cells", n.Cells)
	}
	w.field("metadata", &n.Metadata)
	w.field("nbformat", n.NBFormat)
	w.field("nbformat_minor", n.NBFormatMinor)
	return w.bytes()
}

func (n *Notebook) UnmarshalJSON(data []byte) error {
	entries, err := objectEntries(data)
	if err != nil {
		return err
	}
	*n = Notebook{}
	seen := map[string]bool{}
	for _, ent := range entries {
		seen[ent.key] = true
		switch ent.key {
		case "nbformat":
			err = json.Unmarshal(ent.val, &n.NBFormat)
		case "nbformat_minor":
			err = json.Unmarshal(ent.val, &n.NBFormatMinor)
		case "metadata":
			err = json.Unmarshal(ent.val, &n.Metadata)
		case "cells":
			err = json.Unmarshal(ent.val, &n.Cells)
			if err == nil && n.Cells == nil {
				n.Cells = []Cell{}
			}
		default:
			return fmt.Errorf("unexpected notebook field %q", ent.key)
		}
		if err != nil {
			return fmt.Errorf("notebook field %q: %w", ent.key, err)
		}
	}
	for _, req := range []string{"nbformat", "nbformat_minor", "metadata", "cells"} {
		if !seen[req] {
			return fmt.Errorf("notebook missing %s", req)
		}
	}
	return n.Validate()
}

func (n *Notebook) Equal(o *Notebook) bool {
	return n.NBFormat == o.NBFormat &&
		n.NBFormatMinor == o.NBFormatMinor &&
		n.Metadata.Equal(&o.Metadata) &&
		CellsEqual(n.Cells, o.Cells)
}

func (n *Notebook) Clone() *Notebook {
	cp := &Notebook{
		NBFormat:      n.NBFormat,
		NBFormatMinor: n.NBFormatMinor,
		Metadata:      NotebookMetadata{n.Metadata.Extras.Clone()},
	}
	if n.Cells != nil {
		cp.Cells = make([]Cell, len(n.Cells))
		for i := range n.Cells {
			cp.Cells[i] = n.Cells[i].Clone()
		}
	}
	return cp
}

func (n *Notebook) RecordType() string { return "JupyterNotebook" }

func (n *Notebook) Fields() []Field {
	return []Field{
		{Name: "nbformat", Value: n.NBFormat},
		{Name: "nbformat_minor", Value: n.NBFormatMinor},
		{Name: "metadata", Value: &n.Metadata},
		{Name: "cells", Value: n.Cells},
	}
}

func (n *Notebook) WithFields(fields []Field) (Record, error) {
	res := &Notebook{}
	seen := map[string]bool{}
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		seen[f.Name] = true
		switch f.Name {
		case "nbformat":
			v, ok := asInt(f.Value)
			if !ok {
				return nil, fmt.Errorf("%w: nbformat: expected integer, got %T", ErrInvalidNotebook, f.Value)
			}
			res.NBFormat = v
		case "nbformat_minor":
			v, ok := asInt(f.Value)
			if !ok {
				return nil, fmt.Errorf("%w: nbformat_minor: expected integer, got %T", ErrInvalidNotebook, f.Value)
			}
			res.NBFormatMinor = v
		case "metadata":
			m, ok := f.Value.(*NotebookMetadata)
			if !ok {
				return nil, fmt.Errorf("%w: metadata: expected record, got %T", ErrInvalidNotebook, f.Value)
			}
			res.Metadata = *m
		case "cells":
			cells, ok := f.Value.([]Cell)
			if !ok {
				return nil, fmt.Errorf("%w: cells: expected cell list, got %T", ErrInvalidNotebook, f.Value)
			}
			res.Cells = cells
		default:
			return nil, fmt.Errorf("%w: unexpected notebook field %q", ErrInvalidNotebook, f.Name)
		}
	}
	for _, req := range []string{"nbformat", "nbformat_minor", "metadata", "cells"} {
		if !seen[req] {
			return nil, fmt.Errorf("%w: notebook missing %s", ErrInvalidNotebook, req)
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		return int(x), true
	}
	return 0, false
}
