package timeline

import (
	"fmt"
	"math"
)

// Kind classifies how an item is laid out.
type Kind int

const (
	// KindStandard items carry their label inline on the bar.
	KindStandard Kind = iota
	// KindShortEvent items are too short for an inline label and receive a
	// floating label in an adjacent gap.
	KindShortEvent
)

// CategoryEvent is the category that makes an item eligible for short-event
// treatment.
const CategoryEvent = "event"

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindShortEvent:
		return "short_event"
	default:
		return "standard"
	}
}

// ParseKind converts a wire name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "standard":
		return KindStandard, nil
	case "short_event":
		return KindShortEvent, nil
	}
	return KindStandard, fmt.Errorf("unknown kind %q", s)
}

// TextMetrics holds the character counts the width estimator works from.
type TextMetrics struct {
	NameChars      int
	SecondaryChars int
	DateChars      int
}

// Item is one timed entity to lay out. Items are read-only for the duration
// of a layout run.
type Item struct {
	ID       string
	Start    float64
	End      float64
	Kind     Kind
	Text     TextMetrics
	Priority bool
}

// Duration returns End - Start.
func (it Item) Duration() float64 { return it.End - it.Start }

// IsShortEvent reports whether the item gets a floating label.
func (it Item) IsShortEvent() bool { return it.Kind == KindShortEvent }

// Classify returns the kind for an item of the given category and span.
func Classify(category string, start, end float64, p Params) Kind {
	if category == CategoryEvent && end-start < p.ShortEventThreshold {
		return KindShortEvent
	}
	return KindStandard
}

// Excluded reports whether an item is too short to be shown at all.
func Excluded(it Item, p Params) bool {
	return it.Duration() < p.ExclusionThreshold
}

// FilterExcluded splits items into those that reach the engine and the ids of
// those dropped by the exclusion threshold. Order is preserved.
func FilterExcluded(items []Item, p Params) (kept []Item, dropped []string) {
	kept = make([]Item, 0, len(items))
	for _, it := range items {
		if Excluded(it, p) {
			dropped = append(dropped, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	return kept, dropped
}

// Validate checks caller-side preconditions. [Compute] assumes them and does
// not re-check.
func Validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("item %d: empty id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("item %s: duplicate id", it.ID)
		}
		seen[it.ID] = struct{}{}
		if !finite(it.Start) || !finite(it.End) {
			return fmt.Errorf("item %s: non-finite bounds", it.ID)
		}
		if it.End < it.Start {
			return fmt.Errorf("item %s: end %g before start %g", it.ID, it.End, it.Start)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
