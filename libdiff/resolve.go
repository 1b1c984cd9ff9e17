package libdiff

import (
	"fmt"

	"github.com/nbmend/nbmend/logging"
	"github.com/nbmend/nbmend/nb"
)

// ResolveOptions are the policy knobs collapsing a diff back into a
// record.
//
// KeepFirst selects the preferred side for raw field pairs. With
// IgnoreNone set, an absent preferred value falls back to the other
// side; without it the preferred side is used verbatim, even when
// absent.
//
// CellsFirst selects the winning side for cell-list fields: left when
// true, right when false, and nil keeps both sides wrapped in conflict
// marker cells embedding FirstMarker and LastMarker.
type ResolveOptions struct {
	KeepFirst  bool
	IgnoreNone bool

	CellsFirst  *bool
	FirstMarker string
	LastMarker  string
}

// KeepCells is a convenience for filling ResolveOptions.CellsFirst.
func KeepCells(first bool) *bool {
	return &first
}

// Resolve collapses the diff into a single valid record under the
// given policy, recursing into nested diffs. It fails when the
// resolved record violates its type's invariants.
func (d *RecordDiff) Resolve(opts ResolveOptions) (nb.Record, error) {
	fields := make([]nb.Field, 0, len(d.names))
	for _, name := range d.names {
		fd := d.fields[name]
		var v any
		switch {
		case fd.Nested != nil:
			rec, err := fd.Nested.Resolve(opts)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			v = rec
		case fd.hasCells:
			v = fd.Cells.Resolve(opts.CellsFirst, opts.FirstMarker, opts.LastMarker)
		default:
			v = pick(fd.Left, fd.Right, opts.KeepFirst, opts.IgnoreNone)
		}
		fields = append(fields, nb.Field{Name: name, Value: v})
	}
	if logging.Resolve() {
		logging.Tracef("resolving %s: %d fields, keepFirst=%v", d.RecordType(), len(fields), opts.KeepFirst)
	}
	return d.proto.WithFields(fields)
}

func pick(left, right any, keepFirst, ignoreNone bool) any {
	preferred, other := left, right
	if !keepFirst {
		preferred, other = right, left
	}
	if preferred == nil && ignoreNone {
		return other
	}
	return preferred
}
