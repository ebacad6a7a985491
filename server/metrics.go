package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biograph_http_requests_total",
		Help: "HTTP requests by path and status.",
	}, []string{"path", "status"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "biograph_query_duration_seconds",
		Help:    "Graph query latency by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	graphBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biograph_graph_builds_total",
		Help: "Number of graph rebuilds from stored records.",
	})

	broadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biograph_ws_broadcasts_total",
		Help: "Graph refresh broadcasts sent to WebSocket clients.",
	})

	websocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "biograph_ws_clients",
		Help: "Currently connected WebSocket clients.",
	})
)
