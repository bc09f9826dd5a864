package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriticalIssues(t *testing.T) {
	assert.Len(t, CriticalIssues(SubScores{}), 4)

	issues := CriticalIssues(SubScores{Parsing: 60, KeywordRelevance: 49.9, SkillsAlignment: 50, FormatCompatibility: 60})
	assert.Equal(t, []string{"Insufficient keyword matching with job requirements"}, issues)

	assert.NotNil(t, CriticalIssues(SubScores{100, 100, 100, 100, 100, 100, 100}))
}

func TestRecommendations_Ordering(t *testing.T) {
	recs := Recommendations(SubScores{})
	require.Len(t, recs, 6)

	categories := make([]string, 0, len(recs))
	for _, r := range recs {
		categories = append(categories, r.Category)
	}
	assert.Equal(t, []string{"Structure", "Keywords", "Skills", "Experience", "Formatting", "Content"}, categories)
	assert.Equal(t, "High", recs[0].Priority)
	assert.Equal(t, "Medium", recs[5].Priority)
}

func TestRecommendations_Threshold(t *testing.T) {
	s := SubScores{Parsing: 70, KeywordRelevance: 69.9, SkillsAlignment: 90, ExperienceMatch: 90, FormatCompatibility: 90, ContentQuality: 90}

	recs := Recommendations(s)
	require.Len(t, recs, 1)
	assert.Equal(t, "Keywords", recs[0].Category)

	assert.Empty(t, Recommendations(SubScores{100, 100, 100, 100, 100, 100, 100}))
}

func TestMissingElements(t *testing.T) {
	job := make([]Skill, 0, 12)
	for _, name := range []string{"Python", "Java", "Go", "Rust", "Docker", "AWS", "React", "SQL", "Excel", "Scrum", "Kafka", "Redis"} {
		job = append(job, Skill{Name: name})
	}

	assert.Equal(t, []string{"Python", "Java", "Go", "Rust", "Docker"}, MissingElements(job, nil))
	assert.Equal(t, []string{"Java", "Go", "Rust", "Docker", "AWS"}, MissingElements(job, []Skill{{Name: "python"}}))

	// only the first ten job skills are considered
	have := job[:10]
	assert.Empty(t, MissingElements(job, have))
}

func TestAnalyzeKeywords(t *testing.T) {
	matches := []KeywordMatch{
		{Keyword: "agile", Weight: 1, Tier: TierNone},
		{Keyword: "python", Weight: 3, Tier: TierNone},
		{Keyword: "sql", Weight: 2, Tier: TierSubstring},
		{Keyword: "docker", Weight: 3, Tier: TierNone},
	}

	got := AnalyzeKeywords(matches, 0)
	assert.Equal(t, 1, got.MatchedKeywords)
	assert.Equal(t, 4, got.TotalKeywords)
	assert.Equal(t, 25.0, got.MatchPercentage)
	assert.Equal(t, "Optimal", got.Density)
	assert.Equal(t, []string{"docker", "python", "agile"}, got.TopMissing)

	assert.Equal(t, "Excessive", AnalyzeKeywords(matches, 5).Density)

	empty := AnalyzeKeywords(nil, 0)
	assert.Zero(t, empty.MatchPercentage)
	assert.NotNil(t, empty.TopMissing)
}

func TestImprovementRoadmap(t *testing.T) {
	steps := ImprovementRoadmap(SubScores{})
	require.Len(t, steps, 4)
	for i, s := range steps {
		assert.Equal(t, i+1, s.Step)
	}
	assert.Equal(t, "Fix resume structure and formatting", steps[0].Task)
	assert.Equal(t, "+15 points", steps[0].EstimatedImpact)

	partial := ImprovementRoadmap(SubScores{Parsing: 90, KeywordRelevance: 10, SkillsAlignment: 90, FormatCompatibility: 10})
	require.Len(t, partial, 2)
	assert.Equal(t, 1, partial[0].Step)
	assert.Equal(t, "Optimize keywords and job-specific terms", partial[0].Task)
	assert.Equal(t, 2, partial[1].Step)

	assert.Empty(t, ImprovementRoadmap(SubScores{100, 100, 100, 100, 100, 100, 100}))
}
