package timeline

// placeLabels gives every short event a floating label in a gap adjacent to
// its bar, in pass 1 order. Labels never go farther than half a row from their
// bar, so a connector cannot pass over an unrelated bar; when both gaps are
// blocked the bar moves instead.
func (r *run) placeLabels() {
	for _, i := range r.order {
		if r.items[i].IsShortEvent() {
			r.placeLabel(i)
		}
	}
}

// placeLabel tries item i's adjacent gaps, relocating the bar up to
// MaxRelocations times. The row reached by the last move is tested too; only
// when it also fails does the emergency fallback run.
func (r *run) placeLabel(i int) {
	for attempts := 0; ; attempts++ {
		if r.tryAdjacentGaps(i) {
			return
		}
		if attempts >= r.p.MaxRelocations {
			break
		}
		r.relocate(i)
	}
	r.fallback(i)
}

// tryAdjacentGaps places the label above the bar if possible, else below.
func (r *run) tryAdjacentGaps(i int) bool {
	row := float64(r.barRow[i])
	for _, gapRow := range [2]float64{row - 0.5, row + 0.5} {
		if cand, ok := r.candidate(i, gapRow); ok {
			r.commitLabel(i, cand)
			return true
		}
	}
	return false
}

// candidate builds the label for item i in gapRow and checks it against the
// gap's labels and all connectors other than i's own.
func (r *run) candidate(i int, gapRow float64) (label, bool) {
	if gapRow < 0 {
		return label{}, false
	}
	l := r.labelAt(i, gapRow)
	if !r.occ.gapFits(gapKey(gapRow), l.iv, r.p.LabelMargin, i) {
		return label{}, false
	}
	if r.occ.crosses(l.seg, i) {
		return label{}, false
	}
	return l, true
}

// labelAt returns the label of item i in gapRow without any checks.
func (r *run) labelAt(i int, gapRow float64) label {
	it := r.items[i]
	start := it.Start + r.p.LabelOffset
	return label{
		placed: true,
		row:    gapRow,
		iv:     Interval{Start: start, End: start + LabelWidth(it, r.p), Kind: IntervalLabel},
		seg: Segment{
			A: r.barAnchor(i),
			B: Point{X: start, Y: gapRow},
		},
	}
}

// barAnchor is the midpoint of item i's bar on its current row.
func (r *run) barAnchor(i int) Point {
	it := r.items[i]
	return Point{X: it.Start + it.Duration()/2, Y: float64(r.barRow[i])}
}

// commitLabel registers l as item i's label: its gap interval and its
// connector.
func (r *run) commitLabel(i int, l label) {
	r.occ.addLabel(gapKey(l.row), l.iv, i)
	r.occ.addConnector(l.seg, i)
	r.labels[i] = l
}

// uncommitLabel removes item i's label, gap interval and connector. It is a
// no-op for an item without a label.
func (r *run) uncommitLabel(i int) {
	l := r.labels[i]
	if !l.placed {
		return
	}
	r.occ.removeLabel(gapKey(l.row), i)
	r.occ.removeConnector(i)
	r.labels[i] = label{}
}

// relocate moves item i's bar to the first later row that fits it within the
// scan limit, or to a new bottom row.
func (r *run) relocate(i int) {
	from := r.barRow[i]
	r.occ.removeBar(from, i)
	to := min(from+1+r.p.RelocationScanLimit, r.occ.rowCount())
	row := r.firstFit(r.bars[i], from+1, to)
	if row < 0 {
		row = r.occ.addRow()
	}
	r.moveBar(i, row)
	r.relocations++
}

// moveBar records item i's bar on row. The caller removes it from its old
// row first.
func (r *run) moveBar(i, row int) {
	r.occ.addBar(row, r.bars[i], i)
	r.barRow[i] = row
}

// fallback puts item i on a fresh bottom row with its label in the gap below,
// without collision checks, and records the degraded placement.
func (r *run) fallback(i int) {
	r.occ.removeBar(r.barRow[i], i)
	row := r.occ.addRow()
	r.moveBar(i, row)
	r.commitLabel(i, r.labelAt(i, float64(row)+0.5))
	r.diags = append(r.diags, Diagnostic{
		Kind:    DiagDegradedPlacement,
		ItemID:  r.items[i].ID,
		Message: "no adjacent gap within relocation budget; placed on new row unchecked",
	})
}
