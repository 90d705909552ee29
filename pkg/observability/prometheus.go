package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements every hook interface with metrics on its own
// registry.
type Prometheus struct {
	registry *prometheus.Registry

	layouts        *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	layoutItems    prometheus.Histogram
	relocations    prometheus.Counter
	diagnostics    prometheus.Counter
	degraded       prometheus.Counter
	inflight       prometheus.Gauge

	cacheOps   *prometheus.CounterVec
	cacheBytes prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus creates the metrics under namespace on a fresh registry,
// together with the Go runtime and process collectors.
func NewPrometheus(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Layout runs by outcome (computed, cached, error).",
		}, []string{"outcome"}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Layout run duration, including cache lookups.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		layoutItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_items",
			Help:      "Items per layout run after exclusion.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		relocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_relocations_total",
			Help:      "Bar relocations made while placing labels.",
		}),
		diagnostics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_diagnostics_total",
			Help:      "Diagnostics reported by layout runs.",
		}),
		degraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_degraded_total",
			Help:      "Short events placed by the emergency fallback.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layouts_inflight",
			Help:      "Layout runs in progress.",
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache operations by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	p.registry.MustRegister(
		p.layouts, p.layoutDuration, p.layoutItems, p.relocations,
		p.diagnostics, p.degraded, p.inflight,
		p.cacheOps, p.cacheBytes,
		p.httpRequests, p.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Registry returns the registry holding the metrics.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// OnLayoutStart implements LayoutHooks.
func (p *Prometheus) OnLayoutStart(_ context.Context, _ int) {
	p.inflight.Inc()
}

// OnLayoutComplete implements LayoutHooks.
func (p *Prometheus) OnLayoutComplete(_ context.Context, ev LayoutEvent, d time.Duration, err error) {
	p.inflight.Dec()
	p.layoutDuration.Observe(d.Seconds())
	switch {
	case err != nil:
		p.layouts.WithLabelValues("error").Inc()
		return
	case ev.CacheHit:
		p.layouts.WithLabelValues("cached").Inc()
	default:
		p.layouts.WithLabelValues("computed").Inc()
	}
	p.layoutItems.Observe(float64(ev.Items))
	p.relocations.Add(float64(ev.Relocations))
	p.diagnostics.Add(float64(ev.Diagnostics))
	p.degraded.Add(float64(ev.Degraded))
}

// OnCacheHit implements CacheHooks.
func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

// OnCacheError implements CacheHooks.
func (p *Prometheus) OnCacheError(_ context.Context, keyType string, _ error) {
	p.cacheOps.WithLabelValues(keyType, "error").Inc()
}

// OnRequest implements HTTPHooks.
func (p *Prometheus) OnRequest(context.Context, string, string) {}

// OnResponse implements HTTPHooks.
func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ LayoutHooks = (*Prometheus)(nil)
	_ CacheHooks  = (*Prometheus)(nil)
	_ HTTPHooks   = (*Prometheus)(nil)
)
