package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 存储调用结果标签。
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	storeQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "queries_total",
			Help:      "存储层 SQL 调用次数。",
		},
		[]string{"table", "operation", "outcome"},
	)

	storeQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "存储层 SQL 调用耗时分布（秒）。",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"table", "operation"},
	)
)

// ObserveStoreQuery 记录一次存储调用。
func ObserveStoreQuery(table, operation, outcome string, elapsed time.Duration) {
	storeQueriesTotal.WithLabelValues(table, operation, outcome).Inc()
	storeQueryDuration.WithLabelValues(table, operation).Observe(elapsed.Seconds())
}
