package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/electrum"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer_client",
		Name:      "operations_total",
		Help:      "Count of indexer RPC operations.",
	}, []string{"operation", "network", "status"})
	indexerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of indexer RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// IndexerClient tracks metrics for calls to an Electrum indexer.
type IndexerClient struct {
	network string
}

// NewIndexerClient constructs a metrics collector for indexer calls.
func NewIndexerClient(network string) *IndexerClient {
	if network == "" {
		network = "unknown"
	}
	return &IndexerClient{network: network}
}

// Observe records a single indexer call outcome and duration.
func (m IndexerClient) Observe(operation string, err error, started time.Time) {
	status := callStatus(err)

	indexerRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	indexerRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}

func callStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, electrum.ErrRequestTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
