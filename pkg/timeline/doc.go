// Package timeline implements the lane layout engine for dated items.
//
// Given a set of timed items (people, events), [Compute] assigns every item a
// vertical row so that bars never collide, and gives short events a floating
// label in a gap immediately above or below their bar, joined to the bar by a
// connector.
//
// # Passes
//
// Layout runs in three passes over shared occupancy state:
//
//  1. Row packing: items are placed first-fit into the lowest row whose bar
//     intervals do not collide with the item's footprint. Priority items are
//     packed before all others.
//  2. Label placement: each short event tries the gap above its row, then the
//     gap below. If both are blocked the bar is relocated to a later row and
//     the label is retried, up to [Params.MaxRelocations] times.
//  3. Overlap audit: residual label overlaps are resolved by flipping a label
//     to the opposite gap of its own bar. Standard bar overlaps are reported
//     only.
//
// # Determinism
//
// The engine is pure and synchronous. Identical items and params always
// produce identical results; gap-above is always tried before gap-below, and
// ties in start value keep input order. No state survives between calls.
//
// # Coordinates
//
// Connectors and intervals are expressed in axis space: x in axis units, y in
// row units. Row k is centred on y = k; gap k+0.5 sits between rows k and
// k+1. Use [Params.RowY] and [Params.AxisX] to map to pixels.
package timeline
