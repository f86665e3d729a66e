// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CatalogProductsSynced = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products_synced",
			Help: "Number of products in the last successful catalog sync",
		},
	)

	CatalogSkippedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_skipped_records_total",
			Help: "Catalog records skipped during sync for malformed ranges or missing ids",
		},
	)

	EligibleProductsMatched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eligible_products_matched",
			Help:    "Number of products matched per intake",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	DuplicateSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "duplicate_submissions_total",
			Help: "Submissions collapsed by idempotency key",
		},
	)
)
