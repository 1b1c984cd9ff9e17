package libdiff

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/nbmend/nbmend/logging"
	"github.com/nbmend/nbmend/nb"
)

// Run is one contiguous span of a cell-list alignment. An equal run
// holds the same cells on both sides; a changed run covers one
// contiguous span of insertions, deletions or replacements, where
// either slice may be empty.
type Run struct {
	Equal       bool
	Left, Right []nb.Cell
}

// CellsDiff is an ordered sequence of alignment runs. A nil diff means
// both lists were empty.
type CellsDiff []Run

// DiffCells aligns two cell lists into the smallest number of
// contiguous equal/changed runs.
//
// Each cell is summarized by its canonical serialized form and the
// summaries are interned into runes, so the sequence differ compares
// cells by full structural equality. The checklines heuristic is
// disabled; the alignment is deterministic for identical inputs.
func DiffCells(a, b []nb.Cell) CellsDiff {
	m := map[string]rune{}
	ar := internCells(m, a)
	br := internCells(m, b)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(ar, br, false)

	var runs CellsDiff
	var pendL, pendR []nb.Cell
	flush := func() {
		if len(pendL) > 0 || len(pendR) > 0 {
			runs = append(runs, Run{Left: pendL, Right: pendR})
			pendL, pendR = nil, nil
		}
	}
	ai, bi := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			pendL = append(pendL, a[ai:ai+n]...)
			ai += n
		case diffpatch.DiffInsert:
			pendR = append(pendR, b[bi:bi+n]...)
			bi += n
		case diffpatch.DiffEqual:
			flush()
			runs = append(runs, Run{Equal: true, Left: a[ai : ai+n], Right: b[bi : bi+n]})
			ai += n
			bi += n
		}
	}
	flush()
	if logging.Diff() {
		logging.Tracef("aligned %d x %d cells into %d runs", len(a), len(b), len(runs))
	}
	return runs
}

func internCells(m map[string]rune, cells []nb.Cell) []rune {
	rs := make([]rune, len(cells))
	for i := range cells {
		sum := cells[i].Canon()
		r, ok := m[sum]
		if !ok {
			r = ordRune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

// ordRune maps an intern ordinal to a rune, skipping the surrogate
// range which cannot survive a string round trip.
func ordRune(n int) rune {
	if n >= 0xd800 {
		n += 0x800
	}
	return rune(n)
}
