// Package taxonomy loads the skill taxonomy from a file, Postgres, or the built-in table.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/shared/telemetry"
)

// ErrEmpty is returned when a source holds no categories.
var ErrEmpty = errors.New("taxonomy source is empty")

// Loader reads taxonomy data from a store.
type Loader interface {
	Load(ctx context.Context) (ats.TaxonomyData, error)
}

// LoadFile reads a yaml, json, or toml taxonomy file. Industry tables missing from the
// file fall back to the built-in ones.
func LoadFile(path string) (*ats.Taxonomy, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ats.NewTaxonomy(withDefaults(data))
}

// ReadFile decodes a taxonomy file without validating it.
func ReadFile(path string) (ats.TaxonomyData, error) {
	var data ats.TaxonomyData
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return data, fmt.Errorf("read taxonomy file %s: %w", path, err)
	}
	if err := v.Unmarshal(&data); err != nil {
		return data, fmt.Errorf("decode taxonomy file %s: %w", path, err)
	}
	if len(data.Categories) == 0 {
		return data, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return data, nil
}

func withDefaults(data ats.TaxonomyData) ats.TaxonomyData {
	def := ats.DefaultTaxonomyData()
	if len(data.IndustryTerms) == 0 {
		data.IndustryTerms = def.IndustryTerms
	}
	if len(data.Industries) == 0 {
		data.Industries = def.Industries
	}
	return data
}

// Sources lists where Resolve looks, in order: DB, then File, then the built-in table.
type Sources struct {
	DB   Loader
	File string
}

// Resolve returns the first taxonomy that loads. A failing source is logged and skipped,
// so Resolve always returns a usable taxonomy and the name of the source it came from.
func Resolve(ctx context.Context, src Sources) (*ats.Taxonomy, string) {
	if src.DB != nil {
		data, err := src.DB.Load(ctx)
		if err == nil {
			tax, err := ats.NewTaxonomy(withDefaults(data))
			if err == nil {
				return tax, "database"
			}
			telemetry.Warn("taxonomy.invalid", map[string]any{"source": "database", "err": err})
		} else if !errors.Is(err, ErrEmpty) {
			telemetry.Warn("taxonomy.load_failed", map[string]any{"source": "database", "err": err})
		}
	}
	if path := strings.TrimSpace(src.File); path != "" {
		tax, err := LoadFile(path)
		if err == nil {
			return tax, "file"
		}
		telemetry.Warn("taxonomy.load_failed", map[string]any{"source": "file", "path": path, "err": err})
	}
	return ats.DefaultTaxonomy(), "default"
}
