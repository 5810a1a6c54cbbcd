package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	historyRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "history_reconstructor",
		Name:      "runs_total",
		Help:      "Count of history reconstructions.",
	}, []string{"network", "status"})

	historyRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "history_reconstructor",
		Name:      "run_duration_seconds",
		Help:      "Duration of a history reconstruction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	historyPoints = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "history_reconstructor",
		Name:      "points",
		Help:      "Number of accumulation points produced per run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"network"})

	historyDegradedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "history_reconstructor",
		Name:      "degraded_items_total",
		Help:      "Count of items that failed and were replaced by a neutral value.",
	}, []string{"network", "stage"})

	historyUnresolvedPrevoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "history_reconstructor",
		Name:      "unresolved_prevouts_total",
		Help:      "Count of spent outputs whose funding transaction could not be fetched.",
	}, []string{"network"})
)

// HistoryReconstructor tracks metrics for balance history reconstruction.
type HistoryReconstructor struct {
	network string
}

func NewHistoryReconstructor(network string) *HistoryReconstructor {
	if network == "" {
		network = "unknown"
	}
	return &HistoryReconstructor{network: network}
}

func (m HistoryReconstructor) ObserveRun(err error, points int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	historyRunsTotal.WithLabelValues(m.network, status).Inc()
	historyRunDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		historyPoints.WithLabelValues(m.network).Observe(float64(points))
	}
}

// ObserveDegraded adds n failed items for a stage: history, header or transaction.
func (m HistoryReconstructor) ObserveDegraded(stage string, n int) {
	if n <= 0 {
		return
	}
	historyDegradedTotal.WithLabelValues(m.network, stage).Add(float64(n))
}

func (m HistoryReconstructor) ObserveUnresolvedPrevouts(n int) {
	if n <= 0 {
		return
	}
	historyUnresolvedPrevoutsTotal.WithLabelValues(m.network).Add(float64(n))
}
