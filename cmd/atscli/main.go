// Command atscli scores resumes against job descriptions from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/shared/config"
	"github.com/sibap-dev/storm/internal/shared/storage/db"
	"github.com/sibap-dev/storm/internal/shared/telemetry"
	"github.com/sibap-dev/storm/internal/taxonomy"
)

// taxonomyFlags are shared by every command that needs a taxonomy.
type taxonomyFlags struct {
	file  string
	dbURL string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "atscli",
		Short:         "ATS resume scoring",
		Long:          "Score a resume against a job description the way an applicant tracking system would.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newTaxonomyCmd())
	return root
}

func main() {
	cfg := config.Load()
	telemetry.Configure(envOr(cfg.LogLevel, "warn"), "console")
	defer telemetry.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (f *taxonomyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "taxonomy", "", "Taxonomy file (yaml, json or toml); defaults to TAXONOMY_FILE")
	cmd.Flags().StringVar(&f.dbURL, "db-url", "", "Load the taxonomy from Postgres; defaults to DATABASE_URL when --taxonomy is unset")
}

// resolve loads the taxonomy from the flags, falling back to the environment.
// An explicit --taxonomy file must load.
func (f *taxonomyFlags) resolve(ctx context.Context) (*ats.Taxonomy, string, error) {
	if f.file != "" {
		tax, err := taxonomy.LoadFile(f.file)
		if err != nil {
			return nil, "", err
		}
		return tax, "file", nil
	}

	cfg := config.Load()
	src := taxonomy.Sources{File: cfg.TaxonomyFile}
	dbURL := envOr(f.dbURL, cfg.DatabaseURL)
	if dbURL != "" {
		sqlDB, err := db.Connect(ctx, dbURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
		if err != nil {
			return nil, "", err
		}
		defer sqlDB.Close()
		src.DB = &taxonomy.PGRepo{DB: sqlDB}
	}
	tax, source := taxonomy.Resolve(ctx, src)
	return tax, source, nil
}

func writeJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func envOr(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
