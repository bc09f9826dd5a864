package ats

import (
	"errors"
	"fmt"
	"strings"
)

// SkillClass groups taxonomy categories for skills alignment blending.
type SkillClass string

const (
	ClassTechnicalHard       SkillClass = "technical_hard"
	ClassTechnicalSoft       SkillClass = "technical_soft"
	ClassDomainSpecific      SkillClass = "domain_specific"
	ClassGeneralProfessional SkillClass = "general_professional"
)

// Valid reports whether c is one of the four known classes.
func (c SkillClass) Valid() bool {
	switch c {
	case ClassTechnicalHard, ClassTechnicalSoft, ClassDomainSpecific, ClassGeneralProfessional:
		return true
	default:
		return false
	}
}

// Category is an ordered list of canonical skills sharing a class.
type Category struct {
	Name   string     `json:"name" mapstructure:"name"`
	Class  SkillClass `json:"class" mapstructure:"class"`
	Skills []string   `json:"skills" mapstructure:"skills"`
}

// Industry maps an industry label to the phrases that signal it.
type Industry struct {
	Name     string   `json:"name" mapstructure:"name"`
	Keywords []string `json:"keywords" mapstructure:"keywords"`
}

// Skill is a taxonomy entry resolved to its category and class.
type Skill struct {
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Class    SkillClass `json:"class"`
}

// TaxonomyData is the serializable form of a taxonomy.
type TaxonomyData struct {
	Categories    []Category `json:"categories" mapstructure:"categories"`
	IndustryTerms []string   `json:"industryTerms" mapstructure:"industry_terms"`
	Industries    []Industry `json:"industries" mapstructure:"industries"`
}

var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// Taxonomy is the immutable skill table used by every calculator.
type Taxonomy struct {
	categories    []Category
	skills        []Skill
	skillKeys     []string
	industryTerms []string
	industries    []Industry
}

// NewTaxonomy validates data and returns an immutable copy of it.
func NewTaxonomy(data TaxonomyData) (*Taxonomy, error) {
	if len(data.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTaxonomy)
	}
	t := &Taxonomy{}
	seenCategory := map[string]bool{}
	seenSkill := map[string]bool{}
	for _, cat := range data.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category without name", ErrInvalidTaxonomy)
		}
		if seenCategory[name] {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTaxonomy, name)
		}
		seenCategory[name] = true
		class := SkillClass(strings.ToLower(strings.TrimSpace(string(cat.Class))))
		if class == "" {
			class = ClassGeneralProfessional
		}
		if !class.Valid() {
			return nil, fmt.Errorf("%w: category %q has unknown class %q", ErrInvalidTaxonomy, name, cat.Class)
		}
		out := Category{Name: name, Class: class}
		for _, skill := range cat.Skills {
			skill = strings.TrimSpace(skill)
			key := strings.ToLower(skill)
			if skill == "" || seenSkill[key] {
				continue
			}
			seenSkill[key] = true
			out.Skills = append(out.Skills, skill)
			t.skills = append(t.skills, Skill{Name: skill, Category: name, Class: class})
			t.skillKeys = append(t.skillKeys, key)
		}
		t.categories = append(t.categories, out)
	}
	for _, term := range data.IndustryTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		t.industryTerms = append(t.industryTerms, term)
	}
	for _, ind := range data.Industries {
		name := strings.TrimSpace(ind.Name)
		if name == "" {
			continue
		}
		entry := Industry{Name: name}
		for _, kw := range ind.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				entry.Keywords = append(entry.Keywords, kw)
			}
		}
		if len(entry.Keywords) == 0 {
			continue
		}
		t.industries = append(t.industries, entry)
	}
	return t, nil
}

// MustTaxonomy is NewTaxonomy that panics on invalid data.
func MustTaxonomy(data TaxonomyData) *Taxonomy {
	t, err := NewTaxonomy(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Data returns a deep copy of the taxonomy contents.
func (t *Taxonomy) Data() TaxonomyData {
	out := TaxonomyData{
		Categories:    make([]Category, 0, len(t.categories)),
		IndustryTerms: append([]string(nil), t.industryTerms...),
		Industries:    make([]Industry, 0, len(t.industries)),
	}
	for _, c := range t.categories {
		out.Categories = append(out.Categories, Category{Name: c.Name, Class: c.Class, Skills: append([]string(nil), c.Skills...)})
	}
	for _, ind := range t.industries {
		out.Industries = append(out.Industries, Industry{Name: ind.Name, Keywords: append([]string(nil), ind.Keywords...)})
	}
	return out
}

// Skills returns every skill in taxonomy order.
func (t *Taxonomy) Skills() []Skill {
	return append([]Skill(nil), t.skills...)
}

// FindSkills returns the taxonomy skills mentioned in text, in taxonomy order.
// With fuzzy set, single-word skills also match misspelled words.
func (t *Taxonomy) FindSkills(text string, fuzzy bool) []Skill {
	lower := strings.ToLower(text)
	var words []string
	if fuzzy {
		words = uniqueWords(lower)
	}
	out := make([]Skill, 0, 8)
	for i, skill := range t.skills {
		if containsPhrase(lower, t.skillKeys[i]) {
			out = append(out, skill)
			continue
		}
		if !fuzzy || strings.ContainsRune(skill.Name, ' ') {
			continue
		}
		for _, w := range words {
			if similar(t.skillKeys[i], w, fuzzyKeywordThreshold) {
				out = append(out, skill)
				break
			}
		}
	}
	return out
}

// CountIndustryTerms counts whole-phrase occurrences of industry terminology.
func (t *Taxonomy) CountIndustryTerms(text string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, term := range t.industryTerms {
		total += countPhrase(lower, term)
	}
	return total
}

// FindIndustries returns the industries whose keywords appear in text.
func (t *Taxonomy) FindIndustries(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, ind := range t.industries {
		for _, kw := range ind.Keywords {
			if containsPhrase(lower, kw) {
				out = append(out, ind.Name)
				break
			}
		}
	}
	return out
}

// countPhrase counts occurrences of a lower-cased phrase bounded by
// non-alphanumerics, so symbols such as "c++" and "node.js" still match as whole terms.
func countPhrase(lower, phrase string) int {
	if phrase == "" {
		return 0
	}
	n := 0
	for from := 0; from <= len(lower)-len(phrase); {
		idx := strings.Index(lower[from:], phrase)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(phrase)
		if (start == 0 || !isAlnum(lower[start-1])) && (end == len(lower) || !isAlnum(lower[end])) {
			n++
		}
		from = start + 1
	}
	return n
}

func containsPhrase(lower, phrase string) bool {
	return countPhrase(lower, phrase) > 0
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func uniqueWords(lower string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, 64)
	for _, f := range strings.Fields(lower) {
		w := strings.Trim(f, ".,;:!?()[]{}\"'")
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
