package metrics

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector this process exports.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	analysisStartedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "ats_analysis_started_total",
		Help: "Total analyses started",
	}, []string{"source"})

	analysisCompletedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "ats_analysis_completed_total",
		Help: "Total analyses completed",
	})

	analysisFailedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "ats_analysis_failed_total",
		Help: "Total analyses rejected before scoring",
	}, []string{"reason"})

	analysisDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "ats_analysis_duration_ms",
		Help:    "Analysis duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	totalScore = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "ats_total_score",
		Help:    "Distribution of total ATS scores",
		Buckets: prometheus.LinearBuckets(10, 10, 9),
	})

	extractionFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "ats_extraction_failures_total",
		Help: "Resume documents whose text could not be extracted",
	}, []string{"format"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IncAnalysisStarted increments the started counter for an input source (upload, text, stored).
func IncAnalysisStarted(source string) {
	analysisStartedTotal.WithLabelValues(source).Inc()
}

// IncAnalysisCompleted increments the completed counter and records the score.
func IncAnalysisCompleted(score float64) {
	analysisCompletedTotal.Inc()
	totalScore.Observe(score)
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed(reason string) {
	analysisFailedTotal.WithLabelValues(reason).Inc()
}

// IncExtractionFailure counts a document that yielded no text.
func IncExtractionFailure(format string) {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	if format == "" {
		format = "unknown"
	}
	extractionFailures.WithLabelValues(format).Inc()
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Since returns the milliseconds elapsed since start.
func Since(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
