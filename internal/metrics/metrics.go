// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// 検索セッションやハンドラーから利用する。
type MetricsCollector interface {
	RecordSearch(resultCount int)
	RecordSearchLatency(duration time.Duration)
	RecordBatchServed(size int)
	RecordPlanMutation(operation string)
	SetPlanSize(size int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	searchTotal   prometheus.Counter
	searchResults prometheus.Histogram
	searchLatency prometheus.Histogram
	batchesServed prometheus.Counter
	eventsServed  prometheus.Counter
	planMutations *prometheus.CounterVec
	planSize      prometheus.Gauge
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		searchTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gameplan_search_total",
			Help: "検索実行の合計数",
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gameplan_search_results",
			Help:    "検索1回あたりの結果件数",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
		searchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gameplan_search_latency_seconds",
			Help:    "検索のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		batchesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gameplan_batches_served_total",
			Help: "配信したバッチの合計数",
		}),
		eventsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gameplan_events_served_total",
			Help: "バッチとして配信したイベントの合計数",
		}),
		planMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gameplan_plan_mutations_total",
			Help: "計画の変更操作数（操作種別ごと）",
		}, []string{"operation"}),
		planSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gameplan_plan_size",
			Help: "現在の計画済みイベント数",
		}),
	}

	reg.MustRegister(
		c.searchTotal,
		c.searchResults,
		c.searchLatency,
		c.batchesServed,
		c.eventsServed,
		c.planMutations,
		c.planSize,
	)

	return c
}

// RecordSearch は検索の実行と結果件数を記録する。
func (c *Collector) RecordSearch(resultCount int) {
	c.searchTotal.Inc()
	c.searchResults.Observe(float64(resultCount))
}

// RecordSearchLatency は検索のレイテンシを記録する。
func (c *Collector) RecordSearchLatency(duration time.Duration) {
	c.searchLatency.Observe(duration.Seconds())
}

// RecordBatchServed はバッチ配信とその件数を記録する。
func (c *Collector) RecordBatchServed(size int) {
	c.batchesServed.Inc()
	c.eventsServed.Add(float64(size))
}

// RecordPlanMutation は計画の変更操作を記録する。
func (c *Collector) RecordPlanMutation(operation string) {
	c.planMutations.WithLabelValues(operation).Inc()
}

// SetPlanSize は現在の計画済みイベント数を記録する。
func (c *Collector) SetPlanSize(size int) {
	c.planSize.Set(float64(size))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
