package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAndLabels(t *testing.T) {
	before := testutil.ToFloat64(analysisStartedTotal.WithLabelValues("text"))
	IncAnalysisStarted("text")
	if got := testutil.ToFloat64(analysisStartedTotal.WithLabelValues("text")); got != before+1 {
		t.Fatalf("expected started=%v, got %v", before+1, got)
	}

	IncExtractionFailure(".PDF")
	IncExtractionFailure("")
	if got := testutil.ToFloat64(extractionFailures.WithLabelValues("pdf")); got < 1 {
		t.Fatalf("expected pdf extraction failure counted, got %v", got)
	}
	if got := testutil.ToFloat64(extractionFailures.WithLabelValues("unknown")); got < 1 {
		t.Fatalf("expected unknown extraction failure counted, got %v", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncAnalysisCompleted(72.5)
	IncAnalysisFailed("invalid_input")
	ObserveAnalysisDurationMs(-3)

	r := gin.New()
	r.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{
		"ats_analysis_completed_total",
		"ats_total_score_bucket",
		`ats_analysis_failed_total{reason="invalid_input"}`,
		"ats_analysis_duration_ms_count",
		"go_goroutines",
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}
