package nb

import (
	"encoding/json"
	"fmt"
)

// Cell is a notebook cell, tagged by CellType. Outputs and
// ExecutionCount are meaningful for code cells only; open fields such
// as id or attachments live in Extras.
type Cell struct {
	Type           CellType
	Metadata       CellMetadata
	Source         Source
	Outputs        []Output
	ExecutionCount *int
	Extras         Extras
}

// Validate checks the cell variant invariants: only code cells carry
// outputs and an execution count, code cells always carry outputs, and
// execution counts are positive.
func (c *Cell) Validate() error {
	if c.Type == CodeCell {
		if c.Outputs == nil {
			return fmt.Errorf("code cell missing outputs")
		}
		for i := range c.Outputs {
			if err := c.Outputs[i].Validate(); err != nil {
				return fmt.Errorf("output %d: %w", i, err)
			}
		}
	} else {
		if c.Outputs != nil || c.ExecutionCount != nil {
			return fmt.Errorf("found outputs or execution_count for cell of type %s", c.Type)
		}
	}
	if c.ExecutionCount != nil && *c.ExecutionCount < 1 {
		return fmt.Errorf("execution count must be positive, got %d", *c.ExecutionCount)
	}
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	w := &objWriter{}
	w.field("cell_type", c.Type)
	if c.Type == CodeCell {
		w.field("execution_count", c.ExecutionCount)
	}
	w.field("metadata", &c.Metadata)
	if c.Type == CodeCell {
		if c.Outputs == nil {
			w.raw("outputs", []byte("[]"))
		} else {
			w.field("outputs", c.Outputs)
		}
	}
	w.field("source", c.Source)
	w.extras(c.Extras)
	return w.bytes()
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	entries, err := objectEntries(data)
	if err != nil {
		return err
	}
	*c = Cell{}
	seen := map[string]bool{}
	for _, ent := range entries {
		seen[ent.key] = true
		switch ent.key {
		case "cell_type":
			err = json.Unmarshal(ent.val, &c.Type)
		case "metadata":
			err = json.Unmarshal(ent.val, &c.Metadata)
		case "source":
			err = json.Unmarshal(ent.val, &c.Source)
		case "outputs":
			err = json.Unmarshal(ent.val, &c.Outputs)
			if err == nil && c.Outputs == nil {
				c.Outputs = []Output{}
			}
		case "execution_count":
			err = json.Unmarshal(ent.val, &c.ExecutionCount)
		default:
			var v any
			if v, err = decodeValue(ent.val); err == nil {
				c.Extras.Set(ent.key, v)
			}
		}
		if err != nil {
			return fmt.Errorf("cell field %q: %w", ent.key, err)
		}
	}
	for _, req := range []string{"cell_type", "metadata", "source"} {
		if !seen[req] {
			return fmt.Errorf("cell missing %s", req)
		}
	}
	if c.Type != CodeCell && (seen["outputs"] || seen["execution_count"]) {
		return fmt.Errorf("found outputs or execution_count for cell of type %s", c.Type)
	}
	if c.Type == CodeCell && !seen["outputs"] {
		return fmt.Errorf("code cell missing outputs")
	}
	return c.Validate()
}

func (c Cell) Clone() Cell {
	cp := c
	cp.Metadata = CellMetadata{c.Metadata.Extras.Clone()}
	cp.Source = c.Source.Clone()
	if c.Outputs != nil {
		cp.Outputs = make([]Output, len(c.Outputs))
		for i := range c.Outputs {
			cp.Outputs[i] = c.Outputs[i].Clone()
		}
	}
	if c.ExecutionCount != nil {
		n := *c.ExecutionCount
		cp.ExecutionCount = &n
	}
	cp.Extras = c.Extras.Clone()
	return cp
}

// Canon is the canonical serialized form of the cell: its JSON with
// sorted keys everywhere. Two cells are structurally equal exactly
// when their canonical forms agree.
func (c Cell) Canon() string {
	d, err := json.Marshal(c)
	if err != nil {
		// Marshal only fails on unencodable extras; make the cell
		// compare unequal to everything rather than panic.
		return fmt.Sprintf("!unencodable %p", &c)
	}
	canon, err := canonicalize(d)
	if err != nil {
		return fmt.Sprintf("!unencodable %p", &c)
	}
	return canon
}

func (c Cell) Equal(o Cell) bool {
	return c.Canon() == o.Canon()
}

// CellsEqual reports structural equality of two cell lists.
func CellsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
