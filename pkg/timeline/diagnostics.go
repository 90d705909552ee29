package timeline

import "fmt"

// DiagnosticKind names a non-fatal layout outcome.
type DiagnosticKind string

const (
	// DiagDegradedPlacement: a short event exhausted its relocation budget and
	// was placed by the unchecked emergency fallback.
	DiagDegradedPlacement DiagnosticKind = "degraded_placement"
	// DiagLabelRelocated: the overlap audit moved a label to its opposite gap.
	DiagLabelRelocated DiagnosticKind = "label_relocated"
	// DiagLabelOverlap: the audit found a label overlap it could not resolve.
	DiagLabelOverlap DiagnosticKind = "label_overlap_unresolved"
	// DiagBarOverlap: two standard bars on one row overlap. Bars are never
	// moved after packing, so this is report-only.
	DiagBarOverlap DiagnosticKind = "bar_overlap"
)

// Diagnostic reports a degraded or corrected placement, keyed by item id.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	ItemID  string         `json:"item_id"`
	OtherID string         `json:"other_id,omitempty"`
	Message string         `json:"message"`
}

// String formats the diagnostic as "kind: item[/other]: message".
func (d Diagnostic) String() string {
	if d.OtherID != "" {
		return fmt.Sprintf("%s: %s/%s: %s", d.Kind, d.ItemID, d.OtherID, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.ItemID, d.Message)
}

// Unresolved reports whether the diagnostic marks a defect left in the
// output: an unchecked fallback placement or an overlap the audit could not
// clear. Labels the audit moved successfully are not unresolved.
func (d Diagnostic) Unresolved() bool {
	return d.Kind != DiagLabelRelocated
}

// Stats summarises a layout result.
type Stats struct {
	Items       int
	Rows        int
	Labels      int
	GapsUsed    int
	Relocations int
	// Degraded counts emergency fallback placements only.
	Degraded int
	// Unresolved counts every diagnostic for which Unresolved is true.
	Unresolved int
}

// Stats computes summary counts over the result.
func (res Result) Stats() Stats {
	s := Stats{
		Items:       len(res.Placements),
		Rows:        res.TotalRows,
		Relocations: res.Relocations,
	}
	gaps := make(map[float64]struct{})
	for _, pl := range res.Placements {
		if pl.HasLabel() {
			s.Labels++
			gaps[*pl.LabelRow] = struct{}{}
		}
	}
	s.GapsUsed = len(gaps)
	for _, d := range res.Diagnostics {
		if d.Kind == DiagDegradedPlacement {
			s.Degraded++
		}
		if d.Unresolved() {
			s.Unresolved++
		}
	}
	return s
}
