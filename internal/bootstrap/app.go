package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sibap-dev/storm/internal/analyses"
	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/services/health"
	"github.com/sibap-dev/storm/internal/shared/config"
	"github.com/sibap-dev/storm/internal/shared/server"
	"github.com/sibap-dev/storm/internal/shared/server/middleware"
	"github.com/sibap-dev/storm/internal/shared/storage/db"
	"github.com/sibap-dev/storm/internal/shared/storage/object"
	localstore "github.com/sibap-dev/storm/internal/shared/storage/object/local"
	s3store "github.com/sibap-dev/storm/internal/shared/storage/object/s3"
	"github.com/sibap-dev/storm/internal/shared/telemetry"
	"github.com/sibap-dev/storm/internal/taxonomy"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	Limiter         middleware.Limiter
	Taxonomy        *ats.Taxonomy
	TaxonomySource  string
	Analyzer        *ats.Analyzer
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	Health          *health.Service

	closers []func() error
}

// Build prepares every dependency and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = config.StoreLocal
	}

	app := &App{Config: cfg, Health: health.NewService()}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB.Close)
		app.Health.AddCheck("database", sqlDB.PingContext)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	app.Limiter = buildLimiter(ctx, app)

	src := taxonomy.Sources{File: cfg.TaxonomyFile}
	if sqlDB != nil {
		src.DB = &taxonomy.PGRepo{DB: sqlDB}
	}
	app.Taxonomy, app.TaxonomySource = taxonomy.Resolve(ctx, src)
	app.Analyzer = ats.NewAnalyzer(app.Taxonomy)

	app.AnalysesService = analyses.NewService(app.Analyzer, app.Store, cfg.UploadTmpDir, cfg.MaxUploadBytes)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)

	app.Health.SetInfo("taxonomy", app.TaxonomySource)
	app.Health.SetInfo("object_store", cfg.ObjectStoreType)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		Health:          app.Health,
		Limiter:         app.Limiter,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"database":     sqlDB != nil,
		"object_store": cfg.ObjectStoreType,
		"taxonomy":     app.TaxonomySource,
		"categories":   len(app.Taxonomy.Data().Categories),
		"skills":       len(app.Taxonomy.Skills()),
	})
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.database_disabled", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{"err": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case config.StoreNone:
		return nil, nil
	case config.StoreS3:
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("object store: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildLimiter prefers the shared Redis limiter and falls back to in-process
// buckets when Redis is unset or unreachable at startup.
func buildLimiter(ctx context.Context, app *App) middleware.Limiter {
	redisURL := strings.TrimSpace(app.Config.RedisURL)
	if redisURL == "" {
		return middleware.NewRateLimiter(nil)
	}
	limiter, err := middleware.NewRedisLimiter(redisURL)
	if err != nil {
		telemetry.Warn("bootstrap.redis_invalid", map[string]any{"err": err})
		return middleware.NewRateLimiter(nil)
	}
	if err := limiter.Ping(ctx); err != nil {
		telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"err": err})
		_ = limiter.Close()
		return middleware.NewRateLimiter(nil)
	}
	app.closers = append(app.closers, limiter.Close)
	app.Health.AddCheck("redis", limiter.Ping)
	return limiter
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
