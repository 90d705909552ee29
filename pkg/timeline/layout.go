package timeline

import "math"

// Placement is the output record for one item.
type Placement struct {
	ItemID string `json:"item_id"`
	BarRow int    `json:"bar_row"`
	// LabelRow and LabelOffset are set only for short events that received a
	// floating label. LabelRow is normally a gap index (k+0.5).
	LabelRow    *float64 `json:"label_row,omitempty"`
	LabelOffset *float64 `json:"label_offset,omitempty"`
}

// HasLabel reports whether the placement carries a floating label.
func (pl Placement) HasLabel() bool { return pl.LabelRow != nil }

// Connector is the axis-space line from a bar's anchor to its label's anchor.
type Connector struct {
	ItemID string  `json:"item_id"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// Segment returns the connector as a geometry segment.
func (c Connector) Segment() Segment {
	return Segment{A: Point{c.X1, c.Y1}, B: Point{c.X2, c.Y2}}
}

// Result is the complete output of [Compute].
type Result struct {
	Placements  []Placement  `json:"placements"`
	TotalRows   int          `json:"total_rows"`
	Connectors  []Connector  `json:"connectors,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	// Relocations counts bar moves made by label placement.
	Relocations int `json:"relocations,omitempty"`
}

// label is the floating label state of one short event.
type label struct {
	placed bool
	row    float64
	iv     Interval
	seg    Segment
}

// run carries the mutable state of one Compute call.
type run struct {
	items []Item
	p     Params
	occ   occupancy

	order  []int      // pass 1 processing order, as item indices
	barRow []int      // current bar row per item
	bars   []Interval // bar footprint per item
	labels []label

	relocations int
	diags       []Diagnostic
}

// Compute lays out items and returns one placement per item, in input order.
//
// Items are expected to satisfy [Validate] and to have been filtered with
// [FilterExcluded]. Compute always terminates with a complete placement;
// degraded outcomes are reported through Result.Diagnostics.
func Compute(items []Item, p Params) Result {
	r := &run{
		items:  items,
		p:      p,
		barRow: make([]int, len(items)),
		bars:   make([]Interval, len(items)),
		labels: make([]label, len(items)),
	}
	r.packRows()
	r.placeLabels()
	r.audit()
	return r.result()
}

// result assembles the output in input order, with connectors for every
// placed label.
func (r *run) result() Result {
	res := Result{
		Placements:  make([]Placement, len(r.items)),
		Diagnostics: r.diags,
		Relocations: r.relocations,
	}
	maxLabel := math.Inf(-1)
	for i, it := range r.items {
		pl := Placement{ItemID: it.ID, BarRow: r.barRow[i]}
		if l := r.labels[i]; l.placed {
			row, off := l.row, r.p.LabelOffset
			pl.LabelRow, pl.LabelOffset = &row, &off
			maxLabel = max(maxLabel, row)
			res.Connectors = append(res.Connectors, Connector{
				ItemID: it.ID,
				X1:     l.seg.A.X, Y1: l.seg.A.Y,
				X2: l.seg.B.X, Y2: l.seg.B.Y,
			})
		}
		res.Placements[i] = pl
	}
	res.TotalRows = totalRows(r.occ.rowCount(), maxLabel)
	return res
}

// totalRows sizes the canvas so every bar row and label gap fits.
func totalRows(rows int, maxLabel float64) int {
	need := float64(rows)
	if !math.IsInf(maxLabel, -1) {
		need = max(need, maxLabel+0.5)
	}
	return int(math.Ceil(need))
}
