package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	balanceRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "balance_aggregator",
		Name:      "runs_total",
		Help:      "Count of balance aggregations.",
	}, []string{"network", "status"})

	balanceRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "balance_aggregator",
		Name:      "run_duration_seconds",
		Help:      "Duration of a balance aggregation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	balanceDegradedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "balance_aggregator",
		Name:      "degraded_hashes_total",
		Help:      "Count of script hashes whose balance could not be fetched.",
	}, []string{"network"})
)

// BalanceAggregator tracks metrics for balance aggregation runs.
type BalanceAggregator struct {
	network string
}

func NewBalanceAggregator(network string) *BalanceAggregator {
	if network == "" {
		network = "unknown"
	}
	return &BalanceAggregator{network: network}
}

func (m BalanceAggregator) ObserveRun(err error, degraded int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	balanceRunsTotal.WithLabelValues(m.network, status).Inc()
	balanceRunDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
	if degraded > 0 {
		balanceDegradedTotal.WithLabelValues(m.network).Add(float64(degraded))
	}
}
