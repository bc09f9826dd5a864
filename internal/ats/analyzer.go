package ats

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sibap-dev/storm/internal/extract"
)

// RawTextFormattingScore is the base formatting score for resumes passed as text.
const RawTextFormattingScore = 85

const maxPathLength = 4096

// Analyzer scores resumes against job descriptions. It holds no mutable state
// and is safe for concurrent use.
type Analyzer struct {
	taxonomy *Taxonomy
	now      func() time.Time
	extract  func(path string) extract.Result
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock sets the clock used to resolve open employment ranges.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithExtractor replaces the document extractor.
func WithExtractor(fn func(path string) extract.Result) Option {
	return func(a *Analyzer) {
		if fn != nil {
			a.extract = fn
		}
	}
}

// NewAnalyzer builds an analyzer over tax, or the default taxonomy when tax is nil.
func NewAnalyzer(tax *Taxonomy, opts ...Option) *Analyzer {
	if tax == nil {
		tax = DefaultTaxonomy()
	}
	a := &Analyzer{taxonomy: tax, now: time.Now, extract: extract.File}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Taxonomy returns the taxonomy the analyzer scores with.
func (a *Analyzer) Taxonomy() *Taxonomy {
	return a.taxonomy
}

// Analyze scores a resume given as raw text or as a path to a .pdf/.docx/.doc file.
// It never fails: extraction problems surface in the report's critical issues.
func (a *Analyzer) Analyze(resume, jobDescription string, profile map[string]any) Report {
	if looksLikeFile(resume) {
		return a.AnalyzeFile(resume, jobDescription, profile)
	}
	return a.AnalyzeText(resume, jobDescription, profile)
}

// AnalyzeText scores already-extracted resume text.
func (a *Analyzer) AnalyzeText(resumeText, jobDescription string, profile map[string]any) Report {
	return a.score(resumeText, RawTextFormattingScore, "", jobDescription, profile)
}

// AnalyzeFile extracts and scores a resume document. The caller owns the file.
func (a *Analyzer) AnalyzeFile(path, jobDescription string, profile map[string]any) Report {
	res := a.extract(path)
	return a.AnalyzeExtraction(res, jobDescription, profile)
}

// AnalyzeExtraction scores an extraction result produced elsewhere.
func (a *Analyzer) AnalyzeExtraction(res extract.Result, jobDescription string, profile map[string]any) Report {
	return a.score(res.Text, res.FormattingScore, res.Diagnostic(), jobDescription, profile)
}

func looksLikeFile(s string) bool {
	if s == "" || len(s) > maxPathLength || strings.ContainsAny(s, "\n\r") {
		return false
	}
	info, err := os.Stat(s)
	return err == nil && info.Mode().IsRegular()
}

func (a *Analyzer) score(text string, base float64, diagnostic, jobDescription string, profile map[string]any) Report {
	tax := a.taxonomy
	keywords := ExtractWeightedKeywords(jobDescription, tax)
	jobSkills := tax.FindSkills(jobDescription, false)
	resumeSkills := tax.FindSkills(text, true)
	now := a.now()

	var (
		sub      SubScores
		matches  []KeywordMatch
		failures [7]string
	)
	calculators := []struct {
		name string
		run  func()
	}{
		{"parsing", func() { sub.Parsing = ParsingScore(text) }},
		{"keyword_relevance", func() { sub.KeywordRelevance, matches = KeywordRelevance(text, keywords) }},
		{"skills_alignment", func() { sub.SkillsAlignment = SkillsAlignment(jobSkills, resumeSkills) }},
		{"experience_match", func() { sub.ExperienceMatch = ExperienceMatch(text, jobDescription, tax, now) }},
		{"format_compatibility", func() { sub.FormatCompatibility = FormatCompatibility(text, base) }},
		{"content_quality", func() { sub.ContentQuality = ContentQuality(text, tax) }},
		{"section_completeness", func() { sub.SectionCompleteness = SectionCompleteness(text, profile) }},
	}

	var g errgroup.Group
	for i, calc := range calculators {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					failures[i] = fmt.Sprintf("Could not compute %s score", calc.name)
				}
			}()
			calc.run()
			return nil
		})
	}
	_ = g.Wait()

	level := DetectJobLevel(jobDescription)
	jobType := DetectJobType(jobDescription)
	weights := WeightsFor(level, jobType)
	breakdown := sub.Rounded()
	total := round1(Total(sub, weights))

	issues := make([]string, 0, 6)
	if diagnostic != "" {
		issues = append(issues, diagnostic)
	}
	for _, f := range failures {
		if f != "" {
			issues = append(issues, f)
		}
	}
	issues = append(issues, CriticalIssues(breakdown)...)

	return Report{
		TotalScore:          total,
		Grade:               Grade(total),
		PassProbability:     PassProbability(total),
		StatusMessage:       StatusMessage(total),
		Breakdown:           breakdown,
		CriticalIssues:      issues,
		Recommendations:     Recommendations(breakdown),
		MissingElements:     MissingElements(jobSkills, resumeSkills),
		KeywordAnalysis:     AnalyzeKeywords(matches, KeywordDensityPenalty(text, keywords)),
		CompetitiveStanding: CompetitiveStanding(total),
		ImprovementRoadmap:  ImprovementRoadmap(breakdown),
		JobLevel:            level,
		JobType:             jobType,
		Weights:             weights,
	}
}
