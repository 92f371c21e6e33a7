package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the pricing service collectors and their exposition handler.
type Registry struct {
	reg *prometheus.Registry

	Quotes          prometheus.Counter
	SkippedLines    prometheus.Counter
	QuoteTotal      prometheus.Histogram
	PointsAwarded   prometheus.Counter
	SalesApplied    *prometheus.CounterVec // label: kind
	SalesNoop       *prometheus.CounterVec // label: kind
	SalesReset      prometheus.Counter
	QuoteLatencySec prometheus.Histogram
}

// NewRegistry registers every collector on a private registry.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	quotes := prometheus.NewCounter(prometheus.CounterOpts{Name: "cart_quotes_total", Help: "Carts quoted."})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "cart_quote_skipped_lines_total", Help: "Cart lines skipped for unknown product or out-of-range quantity."})
	quoteTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_quote_final_total",
		Help:    "Final charge per quote in currency units.",
		Buckets: prometheus.ExponentialBuckets(1000, 4, 8),
	})
	points := prometheus.NewCounter(prometheus.CounterOpts{Name: "cart_points_awarded_total", Help: "Loyalty points quoted."})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "catalog_sales_applied_total", Help: "Sale events that changed a product, by kind."}, []string{"kind"})
	noop := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "catalog_sales_noop_total", Help: "Sale events with no eligible product, by kind."}, []string{"kind"})
	reset := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_sales_reset_total", Help: "Products restored to list price."})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_quote_latency_seconds",
		Help:    "Time spent quoting a cart.",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(quotes, skipped, quoteTotal, points, applied, noop, reset, latency)
	return &Registry{
		reg:             r,
		Quotes:          quotes,
		SkippedLines:    skipped,
		QuoteTotal:      quoteTotal,
		PointsAwarded:   points,
		SalesApplied:    applied,
		SalesNoop:       noop,
		SalesReset:      reset,
		QuoteLatencySec: latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
