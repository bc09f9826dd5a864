package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sibap-dev/storm/internal/analyses"
	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/services/health"
	"github.com/sibap-dev/storm/internal/shared/config"
)

func newTestRouter(t *testing.T, cfg config.Config, healthSvc *health.Service) http.Handler {
	t.Helper()
	svc := analyses.NewService(ats.NewAnalyzer(nil), nil, t.TempDir(), 1<<20)
	return NewRouter(RouterDeps{
		Config:          cfg,
		AnalysisHandler: analyses.NewHandler(svc),
		Health:          healthSvc,
	})
}

func TestRouterServesAnalysisWithMiddleware(t *testing.T) {
	r := newTestRouter(t, config.Config{CORSAllowOrigin: []string{"http://localhost:5173"}}, nil)

	body := `{"resumeText":"Jane Doe\njane@example.com\nSkills: Python","jobDescription":"Required: Python"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ats/analyze/text", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("expected CORS header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(w.Body.String(), `"analysisId"`) {
		t.Fatalf("expected analysis envelope, got %s", w.Body.String())
	}
}

func TestRouterRateLimitsAnalyses(t *testing.T) {
	r := newTestRouter(t, config.Config{RateLimitRPS: 0.001, RateLimitBurst: 1}, nil)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ats/analyze/text", bytes.NewBufferString(`{"resumeText":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Guest-Id", "g-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	if code := send(); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", code)
	}

	// Reads use their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ats/taxonomy", nil)
	req.Header.Set("X-Guest-Id", "g-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("taxonomy: expected 200, got %d", w.Code)
	}
}

func TestRouterHealthMetricsAndMe(t *testing.T) {
	healthSvc := health.NewService()
	r := newTestRouter(t, config.Config{}, healthSvc)

	get := func(path string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := get("/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}
	if w := get("/metrics", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Fatalf("metrics: unexpected response %d", w.Code)
	}
	w := get("/api/v1/me", map[string]string{"X-User-Id": "user-7"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"userId":"user-7"`) || !strings.Contains(w.Body.String(), `"isGuest":false`) {
		t.Fatalf("me: unexpected response %d %s", w.Code, w.Body.String())
	}

	healthSvc.AddCheck("database", func(context.Context) error { return errors.New("down") })
	if w := get("/health", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("health with failing check: expected 503, got %d", w.Code)
	}
}

func TestRateLimitRulesDefaults(t *testing.T) {
	rules := RateLimitRules(config.Config{})
	if rules[GroupAnalyze].Rate != 1 || rules[GroupAnalyze].Burst != 5 {
		t.Fatalf("unexpected analyze rule: %+v", rules[GroupAnalyze])
	}
	if rules[GroupRead].Rate != 5 || rules[GroupRead].Burst != 20 {
		t.Fatalf("unexpected read rule: %+v", rules[GroupRead])
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
