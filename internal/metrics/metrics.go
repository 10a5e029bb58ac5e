// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements the observer hooks of the blob, like and feed services
// plus the HTTP middleware's request recorder.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	blobUploads  *prometheus.CounterVec
	feedPageSize *prometheus.HistogramVec
	likeToggles  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_http_requests_total",
			Help: "HTTP responses by route, method and status code",
		}, []string{"route", "method", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		blobUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_blob_uploads_total",
			Help: "Photo uploads by result",
		}, []string{"result"}),
		feedPageSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_feed_page_size",
			Help:    "Number of posts returned per feed page",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		}, []string{"feed"}),
		likeToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_like_toggles_total",
			Help: "Like toggles by resulting state",
		}, []string{"state"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.blobUploads,
		c.feedPageSize,
		c.likeToggles,
	)

	return c
}

// ObserveHTTPRequest records one served request. route is the chi route
// pattern, never the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveHTTPRequest(route, method string, statusCode int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (c *Collector) RecordBlobUpload(result string) {
	c.blobUploads.WithLabelValues(result).Inc()
}

func (c *Collector) ObserveFeedPage(feed string, size int) {
	c.feedPageSize.WithLabelValues(feed).Observe(float64(size))
}

func (c *Collector) RecordLikeToggle(liked bool) {
	state := "unliked"
	if liked {
		state = "liked"
	}
	c.likeToggles.WithLabelValues(state).Inc()
}

// Handler returns the scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
