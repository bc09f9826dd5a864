package taxonomy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sibap-dev/storm/internal/ats"
)

// PGRepo reads and seeds the skill taxonomy tables in Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Load reads the taxonomy tables in position order. It returns ErrEmpty when no
// categories are stored.
func (r *PGRepo) Load(ctx context.Context) (ats.TaxonomyData, error) {
	var data ats.TaxonomyData

	categories, err := r.loadCategories(ctx)
	if err != nil {
		return data, err
	}
	if len(categories) == 0 {
		return data, ErrEmpty
	}
	data.Categories = categories

	if data.IndustryTerms, err = r.loadIndustryTerms(ctx); err != nil {
		return data, err
	}
	if data.Industries, err = r.loadIndustries(ctx); err != nil {
		return data, err
	}
	return data, nil
}

func (r *PGRepo) loadCategories(ctx context.Context) ([]ats.Category, error) {
	const query = `
SELECT c.name, c.class, s.skill
FROM skill_categories c
LEFT JOIN skill_taxonomy s ON s.category = c.name
ORDER BY c.position, s.position`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query skill taxonomy: %w", err)
	}
	defer rows.Close()

	var out []ats.Category
	index := map[string]int{}
	for rows.Next() {
		var name, class string
		var skill sql.NullString
		if err := rows.Scan(&name, &class, &skill); err != nil {
			return nil, fmt.Errorf("scan skill taxonomy: %w", err)
		}
		i, ok := index[name]
		if !ok {
			out = append(out, ats.Category{Name: name, Class: ats.SkillClass(class)})
			i = len(out) - 1
			index[name] = i
		}
		if skill.Valid {
			out[i].Skills = append(out[i].Skills, skill.String)
		}
	}
	return out, rows.Err()
}

func (r *PGRepo) loadIndustryTerms(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT term FROM industry_terms ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query industry terms: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scan industry term: %w", err)
		}
		out = append(out, term)
	}
	return out, rows.Err()
}

func (r *PGRepo) loadIndustries(ctx context.Context) ([]ats.Industry, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT industry, keyword FROM industry_keywords ORDER BY industry_position, position`)
	if err != nil {
		return nil, fmt.Errorf("query industry keywords: %w", err)
	}
	defer rows.Close()

	var out []ats.Industry
	index := map[string]int{}
	for rows.Next() {
		var industry, keyword string
		if err := rows.Scan(&industry, &keyword); err != nil {
			return nil, fmt.Errorf("scan industry keyword: %w", err)
		}
		i, ok := index[industry]
		if !ok {
			out = append(out, ats.Industry{Name: industry})
			i = len(out) - 1
			index[industry] = i
		}
		out[i].Keywords = append(out[i].Keywords, keyword)
	}
	return out, rows.Err()
}

// CountCategories returns the number of stored categories.
func (r *PGRepo) CountCategories(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM skill_categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count skill categories: %w", err)
	}
	return n, nil
}

// Seed writes data into empty taxonomy tables inside one transaction.
func (r *PGRepo) Seed(ctx context.Context, data ats.TaxonomyData) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for ci, cat := range data.Categories {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO skill_categories (name, class, position) VALUES ($1, $2, $3)`,
			cat.Name, string(cat.Class), ci,
		); err != nil {
			return fmt.Errorf("insert category %q: %w", cat.Name, err)
		}
		for si, skill := range cat.Skills {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO skill_taxonomy (category, skill, position) VALUES ($1, $2, $3)`,
				cat.Name, skill, si,
			); err != nil {
				return fmt.Errorf("insert skill %q: %w", skill, err)
			}
		}
	}
	for i, term := range data.IndustryTerms {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO industry_terms (term, position) VALUES ($1, $2)`,
			term, i,
		); err != nil {
			return fmt.Errorf("insert industry term %q: %w", term, err)
		}
	}
	for ii, ind := range data.Industries {
		for ki, kw := range ind.Keywords {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO industry_keywords (industry, keyword, industry_position, position) VALUES ($1, $2, $3, $4)`,
				ind.Name, kw, ii, ki,
			); err != nil {
				return fmt.Errorf("insert industry keyword %q: %w", kw, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// SeedIfEmpty seeds data only when no categories exist. It reports whether it wrote anything.
func (r *PGRepo) SeedIfEmpty(ctx context.Context, data ats.TaxonomyData) (bool, error) {
	n, err := r.CountCategories(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := r.Seed(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}
