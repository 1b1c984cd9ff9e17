package libdiff

import (
	"fmt"
	"slices"

	"github.com/nbmend/nbmend/nb"
)

// FieldDiff is the per-field outcome of a record diff: a raw
// (Left, Right) pair where either side may be absent (nil), or, when
// both sides hold diffable values of the same type, a recursively
// computed nested diff.
type FieldDiff struct {
	Left, Right any

	Nested *RecordDiff

	Cells    CellsDiff
	hasCells bool
}

// IsNested reports whether the field holds a nested diff instead of a
// raw pair.
func (f FieldDiff) IsNested() bool {
	return f.Nested != nil || f.hasCells
}

// RecordDiff captures the field-wise difference of two same-typed
// records. Its static type is the marker distinguishing a diff from a
// resolved record.
type RecordDiff struct {
	proto  nb.Record
	names  []string
	fields map[string]FieldDiff
}

// RecordType names the declared type of the records that were diffed.
func (d *RecordDiff) RecordType() string {
	return d.proto.RecordType()
}

// FieldNames lists every field name of the union of both records'
// field sets, left-side order first.
func (d *RecordDiff) FieldNames() []string {
	return slices.Clone(d.names)
}

func (d *RecordDiff) Field(name string) (FieldDiff, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// DiffRecords computes the field-wise difference of a and b. The
// records must share a declared type, otherwise ErrTypeMismatch. For
// each field in the union of both field sets, same-typed nested
// records and cell lists are diffed recursively; anything else is
// stored as a raw pair, absent sides as nil.
func DiffRecords(a, b nb.Record) (*RecordDiff, error) {
	if a.RecordType() != b.RecordType() {
		return nil, fmt.Errorf("%w: cannot diff %s against %s", ErrTypeMismatch, a.RecordType(), b.RecordType())
	}
	av, bv := map[string]any{}, map[string]any{}
	var names []string
	for _, f := range a.Fields() {
		av[f.Name] = f.Value
		names = append(names, f.Name)
	}
	for _, f := range b.Fields() {
		bv[f.Name] = f.Value
		if _, ok := av[f.Name]; !ok {
			names = append(names, f.Name)
		}
	}

	fields := make(map[string]FieldDiff, len(names))
	for _, name := range names {
		la, lb := av[name], bv[name]
		if ra, ok := la.(nb.Record); ok {
			if rb, ok := lb.(nb.Record); ok && ra.RecordType() == rb.RecordType() {
				nested, err := DiffRecords(ra, rb)
				if err != nil {
					return nil, err
				}
				fields[name] = FieldDiff{Nested: nested}
				continue
			}
		}
		if ca, ok := la.([]nb.Cell); ok {
			if cb, ok := lb.([]nb.Cell); ok {
				fields[name] = FieldDiff{Cells: DiffCells(ca, cb), hasCells: true}
				continue
			}
		}
		fields[name] = FieldDiff{Left: la, Right: lb}
	}
	return &RecordDiff{proto: a, names: names, fields: fields}, nil
}
