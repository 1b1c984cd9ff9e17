package libdiff

import (
	"fmt"

	"github.com/nbmend/nbmend/nb"
)

// Resolve collapses the alignment into one cell list. With keepFirst
// set, the left (true) or right (false) slice of every run is
// concatenated in run order. With keepFirst nil, equal runs pass
// through unchanged and every changed run is kept two-sided, delimited
// by markdown conflict marker cells embedding the revision
// descriptors.
func (cd CellsDiff) Resolve(keepFirst *bool, firstMarker, lastMarker string) []nb.Cell {
	cells := make([]nb.Cell, 0)
	for _, run := range cd {
		switch {
		case keepFirst != nil && *keepFirst:
			cells = append(cells, run.Left...)
		case keepFirst != nil:
			cells = append(cells, run.Right...)
		case run.Equal:
			cells = append(cells, run.Left...)
		default:
			open := markerCell(fmt.Sprintf("`<<<<<<< %s`", firstMarker))
			open.Metadata.Set("git_hash", firstMarker)
			closing := markerCell(fmt.Sprintf("`>>>>>>> %s`", lastMarker))
			closing.Metadata.Set("git_hash", lastMarker)

			cells = append(cells, open)
			cells = append(cells, run.Left...)
			cells = append(cells, markerCell("`=======`"))
			cells = append(cells, run.Right...)
			cells = append(cells, closing)
		}
	}
	return cells
}

// markerCell synthesizes a markdown cell holding one literal conflict
// marker line. The literal backtick-quoted format is load-bearing for
// tooling that scans merged notebooks for markers.
func markerCell(text string) nb.Cell {
	return nb.Cell{
		Type:   nb.MarkdownCell,
		Source: nb.SourceLines(text),
	}
}
