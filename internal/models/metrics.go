package models

import "time"

// SystemMetrics is a lightweight instrumentation snapshot exposed through the
// dashboard, complementing the Prometheus endpoint.
type SystemMetrics struct {
	CacheHitRatio                float64   `json:"cache_hit_ratio"`
	CacheHits                    uint64    `json:"cache_hits"`
	CacheMisses                  uint64    `json:"cache_misses"`
	RequestsTotal                uint64    `json:"requests_total"`
	AverageRequestDurationMs     float64   `json:"average_request_duration_ms"`
	AggregationRuns              uint64    `json:"aggregation_runs"`
	AverageAggregationDurationMs float64   `json:"average_aggregation_duration_ms"`
	Goroutines                   int       `json:"goroutines"`
	GeneratedAt                  time.Time `json:"generated_at"`
}
