// Package nbmend resolves structural conflicts between two revisions
// of a Jupyter notebook, producing a single valid merged notebook.
package nbmend

import (
	"github.com/nbmend/nbmend/libdiff"
	"github.com/nbmend/nbmend/nb"
)

// Diff computes the field-wise difference of two notebooks, recursing
// into the metadata record and aligning the cell lists.
//
// A resulting diff may be collapsed back into a notebook with
// [Resolve].
func Diff(first, last *nb.Notebook) (*libdiff.RecordDiff, error) {
	return libdiff.DiffRecords(first, last)
}

// Resolve collapses a notebook diff into a single valid notebook
// under the given policy.
func Resolve(diff *libdiff.RecordDiff, opts libdiff.ResolveOptions) (*nb.Notebook, error) {
	rec, err := diff.Resolve(opts)
	if err != nil {
		return nil, err
	}
	return rec.(*nb.Notebook), nil
}
