package timeline

import "fmt"

// Params holds every tunable constant of the layout engine.
//
// The width multipliers are empirical and should be tuned against the fonts
// of the rendering surface; none of them carries meaning beyond that.
type Params struct {
	// PixelsPerUnit converts estimated text widths (pixels) to axis units.
	PixelsPerUnit float64 `toml:"pixels_per_unit" json:"pixels_per_unit"`
	// RowHeight is the pixel height of one row, used only by the pixel mapping.
	RowHeight float64 `toml:"row_height" json:"row_height"`

	ShortEventThreshold float64 `toml:"short_event_threshold" json:"short_event_threshold"`
	ExclusionThreshold  float64 `toml:"exclusion_threshold" json:"exclusion_threshold"`

	BarMargin   float64 `toml:"bar_margin" json:"bar_margin"`
	LabelMargin float64 `toml:"label_margin" json:"label_margin"`

	// MaxRelocations bounds how often Pass 2 may move a bar.
	MaxRelocations int `toml:"max_relocations" json:"max_relocations"`
	// RelocationScanLimit bounds the forward row scan of one relocation.
	RelocationScanLimit int `toml:"relocation_scan_limit" json:"relocation_scan_limit"`
	// AuditThreshold is the overlap Pass 3 tolerates between labels or bars.
	AuditThreshold float64 `toml:"audit_threshold" json:"audit_threshold"`
	// LabelOffset shifts a floating label right of its item's start.
	LabelOffset float64 `toml:"label_offset" json:"label_offset"`

	UpperBoldCharPx     float64 `toml:"upper_bold_char_px" json:"upper_bold_char_px"`
	BoldCharPx          float64 `toml:"bold_char_px" json:"bold_char_px"`
	CapitalCharPx       float64 `toml:"capital_char_px" json:"capital_char_px"`
	DatePaddingPx       float64 `toml:"date_padding_px" json:"date_padding_px"`
	MinBarWidthPx       float64 `toml:"min_bar_width_px" json:"min_bar_width_px"`
	InlineMarginUnits   float64 `toml:"inline_margin_units" json:"inline_margin_units"`
	MinFloatingLabelPx  float64 `toml:"min_floating_label_px" json:"min_floating_label_px"`
	FloatingBufferUnits float64 `toml:"floating_buffer_units" json:"floating_buffer_units"`
}

// DefaultParams returns the reference constants.
func DefaultParams() Params {
	return Params{
		PixelsPerUnit:       4,
		RowHeight:           40,
		ShortEventThreshold: 15,
		ExclusionThreshold:  3,
		BarMargin:           6,
		LabelMargin:         10,
		MaxRelocations:      10,
		RelocationScanLimit: 20,
		AuditThreshold:      2,
		LabelOffset:         1,
		UpperBoldCharPx:     9,
		BoldCharPx:          7.5,
		CapitalCharPx:       6.5,
		DatePaddingPx:       12,
		MinBarWidthPx:       40,
		InlineMarginUnits:   2,
		MinFloatingLabelPx:  60,
		FloatingBufferUnits: 1,
	}
}

// Validate rejects params the engine cannot work with.
func (p Params) Validate() error {
	switch {
	case p.PixelsPerUnit <= 0:
		return fmt.Errorf("pixels_per_unit must be positive, got %g", p.PixelsPerUnit)
	case p.RowHeight <= 0:
		return fmt.Errorf("row_height must be positive, got %g", p.RowHeight)
	case p.BarMargin < 0 || p.LabelMargin < 0 || p.AuditThreshold < 0:
		return fmt.Errorf("margins and thresholds must not be negative")
	case p.ShortEventThreshold < 0 || p.ExclusionThreshold < 0:
		return fmt.Errorf("duration thresholds must not be negative")
	case p.MaxRelocations < 0:
		return fmt.Errorf("max_relocations must not be negative, got %d", p.MaxRelocations)
	case p.RelocationScanLimit < 0:
		return fmt.Errorf("relocation_scan_limit must not be negative, got %d", p.RelocationScanLimit)
	}
	return nil
}

// RowY maps a row or gap index to the pixel centre of that lane.
func (p Params) RowY(row float64) float64 {
	return row*p.RowHeight + p.RowHeight/2
}

// AxisX maps an axis value to a horizontal pixel offset from origin.
func (p Params) AxisX(value, origin float64) float64 {
	return (value - origin) * p.PixelsPerUnit
}
