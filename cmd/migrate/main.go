package main

// Run database migrations and seed the skill taxonomy:
//   go run ./cmd/migrate

import (
	"context"
	"os"
	"strings"

	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/shared/config"
	"github.com/sibap-dev/storm/internal/shared/storage/db"
	"github.com/sibap-dev/storm/internal/shared/telemetry"
	"github.com/sibap-dev/storm/internal/taxonomy"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(cfg.LogLevel, cfg.LogFormat)
	defer telemetry.Sync()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	version, err := db.RunMigrations(ctx, sqlDB)
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"err": err})
		os.Exit(1)
	}

	seed := ats.DefaultTaxonomyData()
	if path := strings.TrimSpace(cfg.TaxonomyFile); path != "" {
		tax, err := taxonomy.LoadFile(path)
		if err != nil {
			telemetry.Error("migrate.taxonomy_file_invalid", map[string]any{"path": path, "err": err})
			os.Exit(1)
		}
		seed = tax.Data()
	}

	repo := &taxonomy.PGRepo{DB: sqlDB}
	seeded, err := repo.SeedIfEmpty(ctx, seed)
	if err != nil {
		telemetry.Error("migrate.seed_failed", map[string]any{"err": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{
		"schema_version":  version,
		"taxonomy_seeded": seeded,
		"categories":      len(seed.Categories),
	})
}
