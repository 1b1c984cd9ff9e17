// Package metadata clears volatile notebook and cell metadata from
// notebook files, the main source of spurious git conflicts.
package metadata

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nbmend/nbmend/logging"
	"github.com/nbmend/nbmend/nb"
)

// Options selects what clearing keeps.
type Options struct {
	// NotebookMetaKeep and CellMetaKeep list the metadata fields to
	// keep; everything else is removed. Empty keeps nothing.
	NotebookMetaKeep []string
	CellMetaKeep     []string

	// ClearCellFields are open cell fields to drop, such as id.
	ClearCellFields []string

	ClearExecutionCount bool
	ClearOutputs        bool

	// Check reports unwanted metadata without writing any file.
	Check   bool
	Verbose bool
}

// Clear reads the notebook at readPath, strips unwanted metadata and
// writes the result to writePath. It reports whether the notebook was
// already clean.
func Clear(readPath, writePath string, opts Options) (bool, error) {
	n, err := nb.ReadFile(readPath)
	if err != nil {
		return false, err
	}
	cleaned := n.Clone()
	clearNotebook(cleaned, opts)
	clean := cleaned.Equal(n)
	switch {
	case clean:
		if opts.Verbose {
			logging.Infof("no action taken for %s: no metadata to remove", readPath)
		}
	case opts.Check:
		if opts.Verbose {
			logging.Infof("no action taken for %s: only check (unwanted metadata found)", readPath)
		}
	default:
		if err := cleaned.WriteFile(writePath, true); err != nil {
			return clean, err
		}
		if opts.Verbose {
			logging.Infof("removed metadata from %s, saved as %s", readPath, writePath)
		}
	}
	return clean, nil
}

// ClearAll clears each read path into the corresponding write path,
// invoking progress once per file. It reports per-file cleanliness.
func ClearAll(readPaths, writePaths []string, opts Options, progress func()) ([]bool, error) {
	if len(readPaths) != len(writePaths) {
		return nil, fmt.Errorf("read and write paths must have the same length, got %d and %d",
			len(readPaths), len(writePaths))
	}
	checks := make([]bool, 0, len(readPaths))
	for i := range readPaths {
		clean, err := Clear(readPaths[i], writePaths[i], opts)
		if err != nil {
			return checks, err
		}
		checks = append(checks, clean)
		if progress != nil {
			progress()
		}
	}
	return checks, nil
}

// WritePath derives an output path from path by prefixing and
// suffixing the file stem.
func WritePath(path, prefix, suffix string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, prefix+stem+suffix+ext)
}

func clearNotebook(n *nb.Notebook, opts Options) {
	keepOnly(&n.Metadata.Extras, opts.NotebookMetaKeep)
	for i := range n.Cells {
		c := &n.Cells[i]
		keepOnly(&c.Metadata.Extras, opts.CellMetaKeep)
		for _, f := range opts.ClearCellFields {
			c.Extras.Delete(f)
		}
		if c.Type == nb.CodeCell {
			if opts.ClearExecutionCount {
				c.ExecutionCount = nil
			}
			if opts.ClearOutputs {
				c.Outputs = []nb.Output{}
			}
		}
	}
}

func keepOnly(e *nb.Extras, keep []string) {
	for _, k := range e.Keys() {
		if !slices.Contains(keep, k) {
			e.Delete(k)
		}
	}
}
