package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docservice", Name: "cache_hits_total", Help: "Number of document reads served from the cache."},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docservice", Name: "cache_misses_total", Help: "Number of document reads that fell through to durable storage."},
	)
	CacheErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docservice", Name: "cache_errors_total", Help: "Number of absorbed cache errors by operation."},
		[]string{"op"},
	)
	DocumentsStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docservice", Name: "documents_stored_total", Help: "Number of document store attempts by outcome."},
		[]string{"outcome"},
	)
	DocumentsRetrieved = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docservice", Name: "documents_retrieved_total", Help: "Number of document retrieve attempts by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docservice", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docservice", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(CacheHits)
	reg.MustRegister(CacheMisses)
	reg.MustRegister(CacheErrors)
	reg.MustRegister(DocumentsStored)
	reg.MustRegister(DocumentsRetrieved)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
