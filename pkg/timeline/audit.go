package timeline

import "math"

// overlapPair is a detected collision between items a and b, a before b in
// pass 1 order.
type overlapPair struct{ a, b int }

// audit re-scans the finished layout for collisions left by estimation slack.
// Label overlaps are fixed by flipping a label to the opposite gap of its own
// bar; standard bar overlaps are only reported.
func (r *run) audit() {
	for _, pr := range r.labelOverlaps() {
		if !r.labelsOverlap(pr.a, pr.b) {
			continue // fixed by an earlier flip
		}
		switch {
		case r.flipLabel(pr.b):
			r.noteFlip(pr.b, pr.a)
		case r.flipLabel(pr.a):
			r.noteFlip(pr.a, pr.b)
		default:
			r.diags = append(r.diags, Diagnostic{
				Kind:    DiagLabelOverlap,
				ItemID:  r.items[pr.b].ID,
				OtherID: r.items[pr.a].ID,
				Message: "floating labels overlap and neither can move to its opposite gap",
			})
		}
	}
	for _, pr := range r.barOverlaps() {
		r.diags = append(r.diags, Diagnostic{
			Kind:    DiagBarOverlap,
			ItemID:  r.items[pr.b].ID,
			OtherID: r.items[pr.a].ID,
			Message: "bars overlap on the same row",
		})
	}
}

// noteFlip records that moved's label was flipped to clear other's.
func (r *run) noteFlip(moved, other int) {
	r.diags = append(r.diags, Diagnostic{
		Kind:    DiagLabelRelocated,
		ItemID:  r.items[moved].ID,
		OtherID: r.items[other].ID,
		Message: "label moved to opposite gap to clear an overlap",
	})
}

// adjacentLabelRows is the largest label row distance at which two labels
// are compared. Gap rows are k+0.5, so this covers the same gap and the gaps
// directly above and below it.
const adjacentLabelRows = 1.0

// labelsOverlap reports whether two placed labels sit in the same or an
// adjacent gap and overlap horizontally by more than the audit threshold.
func (r *run) labelsOverlap(a, b int) bool {
	la, lb := r.labels[a], r.labels[b]
	if !la.placed || !lb.placed {
		return false
	}
	if math.Abs(la.row-lb.row) > adjacentLabelRows {
		return false
	}
	return overlapAmount(la.iv, lb.iv) > r.p.AuditThreshold
}

// labelOverlaps lists every overlapping label pair in pass 1 order.
func (r *run) labelOverlaps() []overlapPair {
	var out []overlapPair
	for x, a := range r.order {
		for _, b := range r.order[x+1:] {
			if r.labelsOverlap(a, b) {
				out = append(out, overlapPair{a, b})
			}
		}
	}
	return out
}

// barOverlaps lists standard bars that share a row and overlap by more than
// the audit threshold. Short-event bars are skipped.
func (r *run) barOverlaps() []overlapPair {
	var out []overlapPair
	for x, a := range r.order {
		if r.items[a].IsShortEvent() {
			continue
		}
		for _, b := range r.order[x+1:] {
			if r.items[b].IsShortEvent() || r.barRow[a] != r.barRow[b] {
				continue
			}
			if overlapAmount(r.bars[a], r.bars[b]) > r.p.AuditThreshold {
				out = append(out, overlapPair{a, b})
			}
		}
	}
	return out
}

// flipLabel moves item i's label to the other gap of its bar if that gap
// passes the placement checks and leaves the label clear of every label in
// the same or an adjacent gap. On failure the original gap interval and
// connector are restored.
func (r *run) flipLabel(i int) bool {
	old := r.labels[i]
	target := float64(r.barRow[i]) + 0.5
	if old.row > float64(r.barRow[i]) {
		target = float64(r.barRow[i]) - 0.5
	}
	r.uncommitLabel(i)
	if cand, ok := r.candidate(i, target); ok {
		r.commitLabel(i, cand)
		if r.labelClear(i) {
			return true
		}
		r.uncommitLabel(i)
	}
	r.commitLabel(i, old)
	return false
}

// labelClear reports whether item i's label overlaps no other label under
// the audit's adjacency rule.
func (r *run) labelClear(i int) bool {
	for _, j := range r.order {
		if j != i && r.labelsOverlap(i, j) {
			return false
		}
	}
	return true
}
