package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_parser_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_parser_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_parser_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Parser metrics
var (
	ParseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_parser_parse_total",
			Help: "Total number of parse operations by mime class and outcome",
		},
		[]string{"class", "status"},
	)

	ParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_parser_parse_duration_seconds",
			Help:    "Parse operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"class"},
	)

	ExtractedTextBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_parser_extracted_text_bytes",
			Help:    "Size of extracted text excerpts in bytes",
			Buckets: []float64{0, 64, 256, 512, 1024, 2048, 4096, 5000},
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_parser_thumbnail_generations_total",
			Help: "Total number of thumbnail generations",
		},
		[]string{"type", "status"},
	)

	ThumbnailGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_parser_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"type"},
	)

	ThumbnailFFmpegDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_parser_thumbnail_ffmpeg_duration_seconds",
			Help:    "FFmpeg frame extraction duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

// Mime registry metrics
var (
	RegistryAppendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_parser_mime_registry_appends_total",
			Help: "Total number of side-file append attempts",
		},
		[]string{"status"},
	)

	MimeCorrectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_parser_mime_corrections_total",
			Help: "Total number of pre-save mime type corrections",
		},
		[]string{"result"},
	)
)

// Consumer metrics
var (
	ConsumerRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_parser_consumer_runs_total",
			Help: "Total number of consume directory scans",
		},
	)

	ConsumerLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_parser_consumer_last_run_timestamp",
			Help: "Timestamp of the last consume scan",
		},
	)

	ConsumerLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_parser_consumer_last_run_duration_seconds",
			Help: "Duration of the last consume scan in seconds",
		},
	)

	ConsumerFilesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_parser_consumer_files_processed_total",
			Help: "Total number of files processed by the consumer",
		},
	)

	ConsumerErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_parser_consumer_errors_total",
			Help: "Total number of consumer errors",
		},
	)

	ConsumerIsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_parser_consumer_running",
			Help: "Whether a consume scan is currently running (1 = running, 0 = idle)",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_parser_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_parser_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_parser_db_connections_open",
			Help: "Number of open database connections",
		},
	)

	DocumentsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_parser_documents_total",
			Help: "Total number of stored document records",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_parser_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
