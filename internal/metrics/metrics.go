package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	voteWritesTotal   *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes the metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shoevote",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the shoevote API.",
		}, []string{"method", "path", "status"})

		voteWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shoevote",
			Name:      "vote_writes_total",
			Help:      "Total vote ledger writes by kind and outcome.",
		}, []string{"kind", "outcome"})
	})
}

// IncRequest increments the http_requests_total counter.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncVoteWrite increments the vote_writes_total counter.
func IncVoteWrite(kind, outcome string) {
	if voteWritesTotal == nil {
		return
	}
	voteWritesTotal.WithLabelValues(kind, outcome).Inc()
}
