// Package io reads item documents and writes layout documents.
//
// # Item documents
//
// Item documents are JSON or YAML files with a single "items" array:
//
//	items:
//	  - id: bach
//	    name: J. S. Bach
//	    category: person
//	    secondary: Composer
//	    start: 1685
//	    end: 1750
//	  - id: eruption
//	    name: Vesuvius
//	    category: event
//	    start: 1707
//	    end: 1710
//
// Required fields are id, name, start and end; end must not precede start.
// Records with category "event" and a span below the short-event threshold
// get a floating label. [Convert] turns a document into engine items,
// measuring text in display cells, and separates out the items that are too
// short to show.
//
// # Layout documents
//
// [WriteLayout] encodes a computed layout together with the params that
// produced it and the pixel rows (bar_y, label_y) a renderer needs:
//
//	{
//	  "version": 1,
//	  "total_rows": 3,
//	  "placements": [
//	    {"item_id": "bach", "bar_row": 0, "bar_y": 20},
//	    {"item_id": "eruption", "bar_row": 2, "label_row": 1.5, "label_offset": 1, "bar_y": 100, "label_y": 80}
//	  ],
//	  "connectors": [{"item_id": "eruption", "x1": 1708.5, "y1": 2, "x2": 1708, "y2": 1.5}],
//	  "params": {...}
//	}
//
// [ReadLayout] decodes the same format.
package io
