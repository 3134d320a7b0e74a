// Package metrics exposes Prometheus collectors for the wardrobe service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wardrobe"

// Weather lookup results.
const (
	WeatherCacheHit = "cache_hit"
	WeatherFetched  = "fetched"
	WeatherNotFound = "not_found"
	WeatherError    = "error"
)

// Recorder owns a private registry so tests and multiple instances never collide.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	itemsUploaded       *prometheus.CounterVec
	outfitsComposed     *prometheus.CounterVec
	emptyWardrobe       prometheus.Counter
	weatherLookups      *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		itemsUploaded: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "items",
			Name:      "uploaded_total",
			Help:      "Clothing items tagged and stored, by category",
		}, []string{"category"}),
		outfitsComposed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outfits",
			Name:      "composed_total",
			Help:      "Outfits returned to callers, by label",
		}, []string{"label"}),
		emptyWardrobe: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outfits",
			Name:      "insufficient_wardrobe_total",
			Help:      "Recommendation requests that produced no outfits",
		}),
		weatherLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "weather",
			Name:      "lookups_total",
			Help:      "Weather lookups by result",
		}, []string{"result"}),
	}
}

// ObserveHTTP records a finished request.
func (r *Recorder) ObserveHTTP(method, route string, status int, latency time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// ItemUploaded counts a stored item.
func (r *Recorder) ItemUploaded(category string) {
	if r == nil {
		return
	}
	r.itemsUploaded.WithLabelValues(category).Inc()
}

// OutfitComposed counts a returned outfit.
func (r *Recorder) OutfitComposed(label string) {
	if r == nil {
		return
	}
	r.outfitsComposed.WithLabelValues(label).Inc()
}

// InsufficientWardrobe counts a request answered with no outfits.
func (r *Recorder) InsufficientWardrobe() {
	if r == nil {
		return
	}
	r.emptyWardrobe.Inc()
}

// WeatherLookup counts a lookup outcome.
func (r *Recorder) WeatherLookup(result string) {
	if r == nil {
		return
	}
	r.weatherLookups.WithLabelValues(result).Inc()
}

// Handler serves the exposition format for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
