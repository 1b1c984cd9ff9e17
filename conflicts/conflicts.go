// Package conflicts resolves git conflicts between two revisions of a
// notebook into a single valid notebook.
package conflicts

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/nbmend/nbmend/libdiff"
	"github.com/nbmend/nbmend/logging"
	"github.com/nbmend/nbmend/nb"
)

// ConflictFile is one conflicting path: both sides' raw contents plus
// a human-readable revision descriptor per side. Instances are
// produced by a version-control collaborator such as gitutils.
type ConflictFile struct {
	Filename      string
	FirstLog      string
	LastLog       string
	FirstContents []byte
	LastContents  []byte
}

// DefaultIgnoreFields are the cell fields stripped before diffing.
// They are renumbered whenever a notebook is opened or run and would
// trigger spurious conflict markers.
func DefaultIgnoreFields() []string {
	return []string{"id", "execution_count"}
}

// Options are the resolution policy for a conflict.
type Options struct {
	// MetaFirst prefers the first revision for metadata and scalar
	// top-level fields.
	MetaFirst bool

	// CellsFirst keeps the first (true) or last (false) revision's
	// cells; nil keeps both sides wrapped in conflict marker cells.
	CellsFirst *bool

	// IgnoreFields are cell fields stripped from both sides before
	// diffing; nil selects DefaultIgnoreFields.
	IgnoreFields []string

	// IgnoreNone makes resolution fall back to the other side when
	// the preferred side's value is absent.
	IgnoreNone bool

	Verbose bool
}

// Merge resolves one conflict into a single valid notebook. Neither
// input revision is modified.
func Merge(file ConflictFile, opts Options) (*nb.Notebook, error) {
	first, err := nb.Parse(file.FirstContents)
	if err != nil {
		return nil, fmt.Errorf("first revision (%s): %w", file.FirstLog, err)
	}
	last, err := nb.Parse(file.LastContents)
	if err != nil {
		return nil, fmt.Errorf("last revision (%s): %w", file.LastLog, err)
	}

	ignore := opts.IgnoreFields
	if ignore == nil {
		ignore = DefaultIgnoreFields()
	}
	a, b := first.Clone(), last.Clone()
	stripCellFields(a, ignore)
	stripCellFields(b, ignore)

	if !metadataEqual(&a.Metadata, &b.Metadata) {
		side := "first"
		if !opts.MetaFirst {
			side = "last"
		}
		logging.Warnf("%s: notebook metadata differs between revisions, keeping %s", file.Filename, side)
	}

	diff, err := libdiff.DiffRecords(a, b)
	if err != nil {
		return nil, err
	}
	rec, err := diff.Resolve(libdiff.ResolveOptions{
		KeepFirst:   opts.MetaFirst,
		IgnoreNone:  opts.IgnoreNone,
		CellsFirst:  opts.CellsFirst,
		FirstMarker: file.FirstLog,
		LastMarker:  file.LastLog,
	})
	if err != nil {
		return nil, fmt.Errorf("expected valid notebook: %w", err)
	}
	merged := rec.(*nb.Notebook)
	if opts.Verbose {
		logging.Infof("resolved conflicts for %s", file.Filename)
	}
	return merged, nil
}

func stripCellFields(n *nb.Notebook, fields []string) {
	for i := range n.Cells {
		c := &n.Cells[i]
		for _, f := range fields {
			switch f {
			case "execution_count":
				c.ExecutionCount = nil
			case "outputs":
				if c.Type == nb.CodeCell {
					c.Outputs = []nb.Output{}
				}
			default:
				c.Extras.Delete(f)
			}
		}
	}
}

func metadataEqual(a, b *nb.NotebookMetadata) bool {
	da, err := json.Marshal(a)
	if err != nil {
		return false
	}
	db, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return jsonpatch.Equal(da, db)
}
