package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sibap-dev/storm/internal/analyses"
	"github.com/sibap-dev/storm/internal/services/health"
	"github.com/sibap-dev/storm/internal/shared/config"
	"github.com/sibap-dev/storm/internal/shared/metrics"
	"github.com/sibap-dev/storm/internal/shared/server/middleware"
	"github.com/sibap-dev/storm/internal/shared/server/respond"
)

// Rate limit groups.
const (
	GroupAnalyze = "ANALYZE"
	GroupRead    = "READ"
)

// RouterDeps are the handlers and collaborators the router mounts.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	// Limiter defaults to an in-process token bucket.
	Limiter middleware.Limiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Identity(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	r.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules:    RateLimitRules(deps.Config),
		GroupFor: rateLimitGroup,
		Limiter:  deps.Limiter,
	}))
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api)
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	return r
}

// RateLimitRules derives per-group rules from configuration. Reads get a
// looser budget than analyses.
func RateLimitRules(cfg config.Config) map[string]middleware.RateLimitRule {
	rps := cfg.RateLimitRPS
	burst := cfg.RateLimitBurst
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return map[string]middleware.RateLimitRule{
		GroupAnalyze: {Rate: rps, Burst: burst},
		GroupRead:    {Rate: rps * 5, Burst: burst * 4},
	}
}

func rateLimitGroup(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case !strings.HasPrefix(path, "/api/v1/ats/"):
		return ""
	case c.Request.Method == http.MethodPost:
		return GroupAnalyze
	case c.Request.Method == http.MethodGet:
		return GroupRead
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
