package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timelane/pkg/cache"
	"github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/io"
	"github.com/matzehuels/timelane/pkg/observability"
	"github.com/matzehuels/timelane/pkg/timeline"
)

// Hooks receives pipeline events. Nil fields fall back to the globally
// registered observability hooks.
type Hooks struct {
	Layout observability.LayoutHooks
	Cache  observability.CacheHooks
}

// Runner executes layout runs with caching.
//
// A Runner holds no per-run state; one Runner may serve concurrent runs as
// long as its Cache does.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  Hooks
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// LayoutFile loads the item document at path and lays it out.
func (r *Runner) LayoutFile(ctx context.Context, path string, p timeline.Params, opts Options) (*Result, error) {
	doc, err := io.ImportItems(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return r.LayoutDocument(ctx, doc, p, opts)
}

// LayoutDocument converts doc and lays it out.
func (r *Runner) LayoutDocument(ctx context.Context, doc io.Document, p timeline.Params, opts Options) (*Result, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	items, excluded, err := io.Convert(doc, p)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return r.run(ctx, items, excluded, p, opts)
}

// Layout validates items, drops those below the exclusion threshold and lays
// out the rest.
func (r *Runner) Layout(ctx context.Context, items []timeline.Item, p timeline.Params, opts Options) (*Result, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if err := timeline.Validate(items); err != nil {
		return nil, fmt.Errorf("validate: %w", errors.Wrap(errors.ErrCodeInvalidItem, err, "invalid items"))
	}
	kept, excluded := timeline.FilterExcluded(items, p)
	return r.run(ctx, kept, excluded, p, opts)
}

func validateParams(p timeline.Params) error {
	if err := p.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParams, err, "invalid params")
	}
	return nil
}

func (r *Runner) run(ctx context.Context, items []timeline.Item, excluded []string, p timeline.Params, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	logger := opts.Logger
	layoutHooks, cacheHooks := r.hooks()

	start := time.Now()
	layoutHooks.OnLayoutStart(ctx, len(items))
	res, err := r.layoutWithCache(ctx, items, excluded, p, opts, cacheHooks)
	if res != nil {
		res.Duration = time.Since(start)
	}
	layoutHooks.OnLayoutComplete(ctx, layoutEvent(res, len(excluded)), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if len(excluded) > 0 {
		logger.Debug("excluded short items", "count", len(excluded), "ids", excluded)
	}
	for _, d := range res.Layout.Diagnostics {
		logDiagnostic(logger, d)
	}
	st := res.Stats()
	logger.Info("computed layout",
		"items", st.Items,
		"rows", st.Rows,
		"labels", st.Labels,
		"cached", res.CacheHit,
		"duration", res.Duration.Round(time.Microsecond))
	return res, nil
}

func (r *Runner) layoutWithCache(ctx context.Context, items []timeline.Item, excluded []string, p timeline.Params, opts Options, hooks observability.CacheHooks) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := r.layoutKey(items, p)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			hooks.OnCacheError(ctx, keyTypeLayout, err)
			opts.Logger.Warn("cache read failed", "err", err)
		case hit:
			doc, err := io.ReadLayout(bytes.NewReader(data))
			if err == nil {
				hooks.OnCacheHit(ctx, keyTypeLayout)
				doc.Excluded = excluded
				return &Result{Layout: doc.Result(), Document: doc, Excluded: excluded, CacheHit: true, Key: key}, nil
			}
			opts.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		default:
			hooks.OnCacheMiss(ctx, keyTypeLayout)
		}
	}

	layout := timeline.Compute(items, p)
	doc := io.NewLayoutDocument(layout, p, excluded)

	var buf bytes.Buffer
	if err := io.WriteLayout(&buf, doc); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), opts.TTL); err != nil {
		hooks.OnCacheError(ctx, keyTypeLayout, err)
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, keyTypeLayout, buf.Len())
	}

	return &Result{Layout: layout, Document: doc, Excluded: excluded, Key: key}, nil
}

// layoutKey hashes the items and params. Both are plain values, so their
// JSON encodings are canonical.
func (r *Runner) layoutKey(items []timeline.Item, p timeline.Params) (string, error) {
	itemsHash, err := cache.HashJSON(items)
	if err != nil {
		return "", err
	}
	paramsHash, err := cache.HashJSON(p)
	if err != nil {
		return "", err
	}
	return r.Keyer.LayoutKey(itemsHash, paramsHash), nil
}

func logDiagnostic(logger *log.Logger, d timeline.Diagnostic) {
	kv := []any{"kind", d.Kind, "item", d.ItemID}
	if d.OtherID != "" {
		kv = append(kv, "other", d.OtherID)
	}
	logger.Warn(d.Message, kv...)
}

func layoutEvent(res *Result, excluded int) observability.LayoutEvent {
	ev := observability.LayoutEvent{Excluded: excluded}
	if res == nil {
		return ev
	}
	st := res.Stats()
	ev.Items = st.Items
	ev.Rows = st.Rows
	ev.Labels = st.Labels
	ev.Relocations = st.Relocations
	ev.Degraded = st.Degraded
	ev.Diagnostics = len(res.Layout.Diagnostics)
	ev.CacheHit = res.CacheHit
	return ev
}

func (r *Runner) hooks() (observability.LayoutHooks, observability.CacheHooks) {
	l, c := r.Hooks.Layout, r.Hooks.Cache
	if l == nil {
		l = observability.Layout()
	}
	if c == nil {
		c = observability.Cache()
	}
	return l, c
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
