// Package pipeline runs the timelane layout pipeline.
//
// A run has three stages, shared by the CLI and the HTTP server:
//
//  1. Load: read an item document and convert it to engine items
//  2. Validate: check item preconditions and drop items too short to show
//  3. Layout: compute the layout, or fetch it from the cache
//
// Usage:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.LayoutFile(ctx, "items.yaml", timeline.DefaultParams(), pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	_ = io.WriteLayout(os.Stdout, res.Document)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timelane/pkg/cache"
	"github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/io"
	"github.com/matzehuels/timelane/pkg/timeline"
)

// keyTypeLayout labels layout entries in cache hooks.
const keyTypeLayout = "layout"

// Options controls a single run.
type Options struct {
	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool
	// TTL is the cache lifetime of the result; zero means cache.TTLLayout.
	TTL time.Duration
	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// ValidateAndSetDefaults fills unset fields.
func (o *Options) ValidateAndSetDefaults() error {
	if o.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl must not be negative")
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLLayout
	}
	return nil
}

// Result is the outcome of a run.
type Result struct {
	// Layout is the engine output for the items that reached it.
	Layout timeline.Result
	// Document is Layout in export form.
	Document io.LayoutDocument
	// Excluded lists the ids dropped by the exclusion threshold.
	Excluded []string
	// CacheHit reports whether Layout came from the cache.
	CacheHit bool
	// Key is the cache key of the result.
	Key string
	// Duration covers validation, cache access and layout.
	Duration time.Duration
}

// Stats summarises Layout.
func (r *Result) Stats() timeline.Stats { return r.Layout.Stats() }
