package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	clientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creatorhub_client_requests_total",
		Help: "Total number of backend requests issued by the client",
	}, []string{"method", "route", "status"})

	clientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "creatorhub_client_request_duration_seconds",
		Help:    "Duration of backend requests issued by the client",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	collectionFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "creatorhub_collection_fetch_total",
		Help: "Count of data cache collection fetches by collection and result",
	}, []string{"collection", "result"})

	collectionItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "creatorhub_collection_items",
		Help: "Number of items held by the data cache per collection",
	}, []string{"collection"})
)

// ObserveRequest records a backend request. status is the HTTP code or
// "error" when no response was obtained.
func ObserveRequest(method, path, status string, duration time.Duration) {
	route := Route(path)
	clientRequestsTotal.WithLabelValues(method, route, status).Inc()
	clientRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveCollectionFetch counts a collection fetch with result "ok", "empty" or "failed".
func ObserveCollectionFetch(collection, result string) {
	collectionFetches.WithLabelValues(collection, result).Inc()
}

// SetCollectionItems sets the cached item count for a collection.
func SetCollectionItems(collection string, count int) {
	if count < 0 {
		count = 0
	}
	collectionItems.WithLabelValues(collection).Set(float64(count))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// routeSegments are the literal path segments of the backend API. Any other
// segment is an identifier.
var routeSegments = map[string]bool{
	"users":    true,
	"fans":     true,
	"contenu":  true,
	"images":   true,
	"messages": true,
	"auth":     true,
	"login":    true,
	"me":       true,
	"settings": true,
	"social":   true,
}

// Route strips the query and collapses every segment that is not part of the
// API vocabulary so labels stay bounded: "/users/alice?x=1" becomes
// "/users/:id".
func Route(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s != "" && !routeSegments[s] {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
