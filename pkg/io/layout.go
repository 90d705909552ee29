package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/timeline"
)

// LayoutVersion is the layout document format version.
const LayoutVersion = 1

// LayoutDocument is the serialized form of a computed layout.
type LayoutDocument struct {
	Version     int                   `json:"version"`
	TotalRows   int                   `json:"total_rows"`
	Relocations int                   `json:"relocations"`
	Placements  []PlacedItem          `json:"placements"`
	Connectors  []timeline.Connector  `json:"connectors"`
	Diagnostics []timeline.Diagnostic `json:"diagnostics"`
	Excluded    []string              `json:"excluded,omitempty"`
	Params      timeline.Params       `json:"params"`
}

// PlacedItem is a placement plus its pixel rows.
type PlacedItem struct {
	timeline.Placement
	BarY   float64  `json:"bar_y"`
	LabelY *float64 `json:"label_y,omitempty"`
}

// NewLayoutDocument builds the document for res computed with p.
func NewLayoutDocument(res timeline.Result, p timeline.Params, excluded []string) LayoutDocument {
	doc := LayoutDocument{
		Version:     LayoutVersion,
		TotalRows:   res.TotalRows,
		Relocations: res.Relocations,
		Placements:  make([]PlacedItem, len(res.Placements)),
		Connectors:  nonNil(res.Connectors),
		Diagnostics: nonNil(res.Diagnostics),
		Excluded:    excluded,
		Params:      p,
	}
	for i, pl := range res.Placements {
		item := PlacedItem{Placement: pl, BarY: p.RowY(float64(pl.BarRow))}
		if pl.HasLabel() {
			y := p.RowY(*pl.LabelRow)
			item.LabelY = &y
		}
		doc.Placements[i] = item
	}
	return doc
}

// Result converts the document back to an engine result.
func (d LayoutDocument) Result() timeline.Result {
	res := timeline.Result{
		Placements:  make([]timeline.Placement, len(d.Placements)),
		TotalRows:   d.TotalRows,
		Relocations: d.Relocations,
	}
	for i, pl := range d.Placements {
		res.Placements[i] = pl.Placement
	}
	if len(d.Connectors) > 0 {
		res.Connectors = d.Connectors
	}
	if len(d.Diagnostics) > 0 {
		res.Diagnostics = d.Diagnostics
	}
	return res
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// WriteLayout encodes doc as indented JSON.
func WriteLayout(w io.Writer, doc LayoutDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes doc to a JSON file at path.
func ExportLayout(doc LayoutDocument, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadLayout decodes a layout document from r.
func ReadLayout(r io.Reader) (LayoutDocument, error) {
	var doc LayoutDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return doc, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if doc.Version != LayoutVersion {
		return doc, errors.New(errors.ErrCodeUnsupported, "layout version %d not supported", doc.Version)
	}
	return doc, nil
}

// ImportLayout reads the layout document at path.
func ImportLayout(path string) (LayoutDocument, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return LayoutDocument{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
