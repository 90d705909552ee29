package timeline

// WidthMode selects how an item's text is laid out for estimation.
type WidthMode int

const (
	// ModeInline stacks name, secondary label and dates inside the bar.
	ModeInline WidthMode = iota
	// ModeFloating puts name, dates and secondary label on one line.
	ModeFloating
)

type textWidths struct {
	name, secondary, date float64
}

// measure converts character counts to pixel widths per text class.
func measure(t TextMetrics, p Params) textWidths {
	w := textWidths{
		name:      float64(t.NameChars) * p.UpperBoldCharPx,
		secondary: float64(t.SecondaryChars) * p.BoldCharPx,
	}
	if t.DateChars > 0 {
		w.date = float64(t.DateChars)*p.CapitalCharPx + p.DatePaddingPx
	}
	return w
}

// EstimateWidth returns the estimated text footprint of an item in axis
// units. It is pure: equal inputs give equal outputs.
func EstimateWidth(it Item, mode WidthMode, p Params) float64 {
	w := measure(it.Text, p)
	if mode == ModeFloating {
		px := max(w.name+w.date+w.secondary, p.MinFloatingLabelPx)
		return px/p.PixelsPerUnit + p.FloatingBufferUnits
	}
	px := max(w.name, w.secondary, w.date, p.MinBarWidthPx)
	return px/p.PixelsPerUnit + p.InlineMarginUnits
}

// BarFootprint returns the horizontal extent an item's bar claims on its row.
// Short events hold no text, so their footprint is their raw duration.
// Standard items claim the larger of their duration and their inline text.
func BarFootprint(it Item, p Params) float64 {
	if it.IsShortEvent() {
		return it.Duration()
	}
	return max(it.Duration(), EstimateWidth(it, ModeInline, p))
}

// LabelWidth returns the floating label width of a short event.
func LabelWidth(it Item, p Params) float64 {
	return EstimateWidth(it, ModeFloating, p)
}
