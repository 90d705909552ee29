package io

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/timeline"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// cells measures display width. Ambiguous-width runes count as narrow
// regardless of locale.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Convert validates the records of doc and turns them into engine items in
// document order. Items below the exclusion threshold are returned by id in
// excluded instead of items.
func Convert(doc Document, p timeline.Params) (items []timeline.Item, excluded []string, err error) {
	all := make([]timeline.Item, 0, len(doc.Items))
	seen := make(map[string]int, len(doc.Items))
	for i, rec := range doc.Items {
		if err := ValidateRecord(rec); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidItem, err, "item %d (%s)", i, rec.ID)
		}
		if j, dup := seen[rec.ID]; dup {
			return nil, nil, errors.New(errors.ErrCodeInvalidItem, "item %d: id %q already used by item %d", i, rec.ID, j)
		}
		seen[rec.ID] = i
		all = append(all, ToItem(rec, p))
	}
	items, excluded = timeline.FilterExcluded(all, p)
	return items, excluded, nil
}

// ValidateRecord checks the struct tags of rec and the bounds of its span.
func ValidateRecord(rec Record) error {
	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	if err := errors.ValidateItemID(rec.ID); err != nil {
		return err
	}
	return errors.ValidateSpan(rec.ID, *rec.Start, *rec.End)
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, strings.ToLower(e.Param()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ToItem converts a validated record. Text metrics are display-cell counts.
func ToItem(rec Record, p timeline.Params) timeline.Item {
	start, end := *rec.Start, *rec.End
	return timeline.Item{
		ID:    rec.ID,
		Start: start,
		End:   end,
		Kind:  timeline.Classify(rec.Category, start, end, p),
		Text: timeline.TextMetrics{
			NameChars:      cells.StringWidth(rec.Name),
			SecondaryChars: cells.StringWidth(rec.Secondary),
			DateChars:      cells.StringWidth(FormatRange(start, end)),
		},
		Priority: rec.Priority,
	}
}

// FormatRange renders a span the way labels display it, e.g. "1685–1750"
// or "490 BC–479 BC". Equal bounds render once.
func FormatRange(start, end float64) string {
	if start == end {
		return formatValue(start)
	}
	return formatValue(start) + "–" + formatValue(end)
}

func formatValue(v float64) string {
	if v < 0 {
		return formatNumber(-v) + " BC"
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
