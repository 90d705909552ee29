package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

const maxItemIDLength = 256

// ValidateItemID rejects ids that cannot key a placement.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}
	if len(id) > maxItemIDLength {
		return New(ErrCodeInvalidItem, "item id too long (max %d characters)", maxItemIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id %q contains control characters", id)
		}
	}
	return nil
}

// ValidateSpan checks that an item's bounds are finite and ordered.
func ValidateSpan(id string, start, end float64) error {
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) {
		return New(ErrCodeInvalidSpan, "item %s: bounds must be finite", id)
	}
	if end < start {
		return New(ErrCodeInvalidSpan, "item %s: end %g before start %g", id, end, start)
	}
	return nil
}

// ValidateInputPath checks that path names an item document the importer
// understands. Only the extension is inspected.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported input format %q (want .json, .yaml or .yml)", filepath.Ext(path))
}
