package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minerva_pipeline_runs_total",
			Help: "Total number of rating pipeline runs",
		},
		[]string{"status"}, // status: success|error
	)

	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "minerva_pipeline_duration_seconds",
			Help:    "Rating pipeline run duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
	)

	TickersScored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "minerva_pipeline_tickers_scored",
			Help: "Number of tickers scored in the last pipeline run",
		},
	)

	NilComposites = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "minerva_pipeline_nil_composites",
			Help: "Number of tickers with no usable scoring inputs in the last run",
		},
	)

	GradeDistribution = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "minerva_grade_distribution",
			Help: "Number of tickers per grade in the last run",
		},
		[]string{"grade"},
	)

	// Worker metrics
	WorkerExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minerva_worker_executions_total",
			Help: "Total number of worker executions",
		},
		[]string{"worker", "status"}, // status: success|error
	)

	WorkerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minerva_worker_duration_seconds",
			Help:    "Worker execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"worker"},
	)

	WorkerLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "minerva_worker_last_run_timestamp",
			Help: "Unix timestamp of last worker execution",
		},
		[]string{"worker"},
	)

	// Database metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minerva_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"database", "operation", "status"}, // database: postgres|clickhouse|redis
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minerva_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"database", "operation"},
	)
)

// Init registers all metrics with the default registry
func Init() {
	prometheus.MustRegister(
		PipelineRuns,
		PipelineDuration,
		TickersScored,
		NilComposites,
		GradeDistribution,
		WorkerExecutions,
		WorkerDuration,
		WorkerLastRun,
		DBQueries,
		DBQueryDuration,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordPipelineRun records the outcome of one full pipeline run
func RecordPipelineRun(duration time.Duration, scored, nilComposites int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	PipelineRuns.WithLabelValues(status).Inc()
	PipelineDuration.Observe(duration.Seconds())

	if err == nil {
		TickersScored.Set(float64(scored))
		NilComposites.Set(float64(nilComposites))
	}
}

// RecordWorkerExecution records a worker iteration
func RecordWorkerExecution(worker string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	WorkerExecutions.WithLabelValues(worker, status).Inc()
	WorkerDuration.WithLabelValues(worker).Observe(duration.Seconds())
	WorkerLastRun.WithLabelValues(worker).Set(float64(time.Now().Unix()))
}

// RecordDBQuery records a database query
func RecordDBQuery(database, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	DBQueries.WithLabelValues(database, operation, status).Inc()
	DBQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())
}
