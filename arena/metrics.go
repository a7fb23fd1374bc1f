package arena

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena_client",
			Name:      "requests_total",
			Help:      "Outbound API requests by outcome.",
		},
		[]string{"outcome"},
	)

	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arena_client",
			Name:      "cache_hits_total",
			Help:      "Responses served from the local TTL cache.",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arena_client",
			Name:      "cache_misses_total",
			Help:      "Cache lookups that fell through to the network.",
		},
	)
)

const (
	outcomeOK           = "ok"
	outcomeUnauthorized = "unauthorized"
	outcomeForbidden    = "forbidden"
	outcomeNotFound     = "not_found"
	outcomeRateLimited  = "rate_limited"
	outcomeServerError  = "server_error"
	outcomeNetworkError = "network_error"
)
