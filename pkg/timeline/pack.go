package timeline

import (
	"cmp"
	"slices"
)

// packingOrder returns item indices with priority items first, each group
// sorted by start. The sort is stable so equal starts keep input order.
func packingOrder(items []Item) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ia, ib := items[a], items[b]
		if ia.Priority != ib.Priority {
			if ia.Priority {
				return -1
			}
			return 1
		}
		return cmp.Compare(ia.Start, ib.Start)
	})
	return order
}

// packRows assigns every item to the first row its footprint fits in,
// creating rows only when none fits.
func (r *run) packRows() {
	r.order = packingOrder(r.items)
	for _, i := range r.order {
		it := r.items[i]
		bar := Interval{Start: it.Start, End: it.Start + BarFootprint(it, r.p), Kind: IntervalBar}
		row := r.firstFit(bar, 0, r.occ.rowCount())
		if row < 0 {
			row = r.occ.addRow()
		}
		r.occ.addBar(row, bar, i)
		r.barRow[i] = row
		r.bars[i] = bar
	}
}

// firstFit scans rows [from, to) and returns the first that accepts bar, or -1.
func (r *run) firstFit(bar Interval, from, to int) int {
	for row := from; row < to; row++ {
		if r.occ.rowFits(row, bar, r.p.BarMargin) {
			return row
		}
	}
	return -1
}
