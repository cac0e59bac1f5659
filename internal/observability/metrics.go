package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "swiftlogix", Name: "orders_created_total", Help: "Total orders created"})
	OrdersAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "swiftlogix", Name: "orders_accepted_total", Help: "Total orders accepted by drivers"})
	AcceptConflicts     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "swiftlogix", Name: "accept_conflicts_total", Help: "Accept attempts lost to a concurrent winner"})
	AuthFailuresTotal   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "swiftlogix", Name: "auth_failures_total", Help: "Rejected credentials (missing, malformed, or expired)"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "swiftlogix", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "swiftlogix",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
