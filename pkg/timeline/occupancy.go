package timeline

import "slices"

// slot is an interval tagged with the index of the item that owns it.
type slot struct {
	Interval
	owner int
}

// wire is a connector tagged with the index of the item that owns it.
type wire struct {
	Segment
	owner int
}

// occupancy is the row, gap and connector state of one layout run. Rows and
// gaps are index-addressed and only ever grow. Gap k lies between rows k and
// k+1, i.e. at label row k+0.5.
type occupancy struct {
	rows       [][]slot
	gaps       [][]slot
	connectors []wire
}

// rowCount returns the number of rows created so far.
func (o *occupancy) rowCount() int { return len(o.rows) }

// addRow appends an empty row at the bottom and returns its index.
func (o *occupancy) addRow() int {
	o.rows = append(o.rows, nil)
	return len(o.rows) - 1
}

// rowFits reports whether iv keeps at least margin clear of every bar on row.
func (o *occupancy) rowFits(row int, iv Interval, margin float64) bool {
	for _, s := range o.rows[row] {
		if IntervalsOverlap(iv, s.Interval, margin) {
			return false
		}
	}
	return true
}

// addBar records owner's bar interval on row.
func (o *occupancy) addBar(row int, iv Interval, owner int) {
	o.rows[row] = append(o.rows[row], slot{Interval: iv, owner: owner})
}

// removeBar drops owner's bar from row. Other bars keep their order.
func (o *occupancy) removeBar(row, owner int) {
	o.rows[row] = removeOwner(o.rows[row], owner)
}

// gapKey converts a label row (k+0.5) to its gap index k.
func gapKey(labelRow float64) int {
	return int(labelRow - 0.5)
}

// gap returns the labels of gap key, or nil for a gap not yet created.
func (o *occupancy) gap(key int) []slot {
	if key < 0 || key >= len(o.gaps) {
		return nil
	}
	return o.gaps[key]
}

// gapFits reports whether iv keeps at least margin clear of every label in
// gap key. The label owned by ignore is skipped so an item can be re-tested
// against its own old position.
func (o *occupancy) gapFits(key int, iv Interval, margin float64, ignore int) bool {
	for _, s := range o.gap(key) {
		if s.owner == ignore {
			continue
		}
		if IntervalsOverlap(iv, s.Interval, margin) {
			return false
		}
	}
	return true
}

// addLabel records owner's label in gap key, creating gaps up to key.
func (o *occupancy) addLabel(key int, iv Interval, owner int) {
	for len(o.gaps) <= key {
		o.gaps = append(o.gaps, nil)
	}
	o.gaps[key] = append(o.gaps[key], slot{Interval: iv, owner: owner})
}

// removeLabel drops owner's label from gap key; unknown gaps are ignored.
func (o *occupancy) removeLabel(key, owner int) {
	if key >= 0 && key < len(o.gaps) {
		o.gaps[key] = removeOwner(o.gaps[key], owner)
	}
}

// crosses reports whether seg crosses any recorded connector not owned by
// ignore.
func (o *occupancy) crosses(seg Segment, ignore int) bool {
	for _, c := range o.connectors {
		if c.owner != ignore && seg.Crosses(c.Segment) {
			return true
		}
	}
	return false
}

// addConnector records owner's bar-to-label connector.
func (o *occupancy) addConnector(seg Segment, owner int) {
	o.connectors = append(o.connectors, wire{Segment: seg, owner: owner})
}

// removeConnector drops every connector owned by owner.
func (o *occupancy) removeConnector(owner int) {
	o.connectors = slices.DeleteFunc(o.connectors, func(w wire) bool { return w.owner == owner })
}

// removeOwner deletes owner's slots in place.
func removeOwner(slots []slot, owner int) []slot {
	return slices.DeleteFunc(slots, func(s slot) bool { return s.owner == owner })
}
