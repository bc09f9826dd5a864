package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeBands(t *testing.T) {
	cases := []struct {
		score float64
		grade string
		pass  string
	}{
		{100, "A+", "95-98%"},
		{95, "A+", "95-98%"},
		{90, "A", "95-98%"},
		{89.9, "A-", "85-90%"},
		{75, "B", "70-80%"},
		{60, "C", "50-65%"},
		{50, "D", "30-45%"},
		{49.9, "F", "10-25%"},
		{0, "F", "10-25%"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, Grade(tc.score), "grade for %v", tc.score)
		assert.Equal(t, tc.pass, PassProbability(tc.score), "pass band for %v", tc.score)
	}
}

func TestBandsUseReportedTotal(t *testing.T) {
	// 89.96 is reported as 90.0, so it grades as 90.0 does.
	assert.Equal(t, "A", Grade(round1(89.96)))
	assert.Equal(t, "95-98%", PassProbability(round1(89.96)))
	assert.Contains(t, StatusMessage(round1(89.96)), "Excellent")
	assert.Equal(t, "A-", Grade(round1(89.94)))
}

func TestStatusAndStanding(t *testing.T) {
	assert.Contains(t, StatusMessage(91), "Excellent")
	assert.Contains(t, StatusMessage(69.9), "Fair")
	assert.Contains(t, StatusMessage(10), "Critical")
	for _, score := range []float64{95, 85, 75, 65, 55, 10} {
		msg := StatusMessage(score)
		for _, r := range msg {
			assert.Less(t, r, rune(0x80), "status for %v should be plain text: %q", score, msg)
		}
	}

	assert.Equal(t, "Top 10% of applicants", CompetitiveStanding(90))
	assert.Equal(t, "Average applicant pool", CompetitiveStanding(60))
	assert.Equal(t, "Below average applicant pool", CompetitiveStanding(59.9))
}

func TestWeightsFor(t *testing.T) {
	assert.InDelta(t, 1.0, BaseWeights.Sum(), 1e-9)
	assert.Equal(t, BaseWeights, WeightsFor(LevelMid, TypeGeneral))

	senior := WeightsFor(LevelSenior, TypeTechnical)
	assert.InDelta(t, 0.20, senior.Experience, 1e-9)
	assert.InDelta(t, 0.05, senior.Content, 1e-9)
	assert.InDelta(t, 0.25, senior.Keywords, 1e-9)
	assert.InDelta(t, 0.30, senior.Skills, 1e-9)
	assert.InDelta(t, 0.0, senior.Completeness, 1e-9)

	entry := WeightsFor(LevelEntry, TypeGeneral)
	assert.InDelta(t, 0.30, entry.Skills, 1e-9)
	assert.InDelta(t, 0.30, entry.Keywords, 1e-9)
	assert.InDelta(t, 0.05, entry.Experience, 1e-9)
	assert.InDelta(t, 1.0, entry.Sum(), 1e-9)
}

func TestTotal(t *testing.T) {
	all := func(v float64) SubScores {
		return SubScores{v, v, v, v, v, v, v}
	}

	assert.InDelta(t, 100, Total(all(100), BaseWeights), 1e-9)
	assert.InDelta(t, 0, Total(all(0), BaseWeights), 1e-9)
	assert.InDelta(t, 50, Total(all(50), BaseWeights), 1e-9)

	for _, level := range []JobLevel{LevelEntry, LevelMid, LevelSenior} {
		for _, jt := range []JobType{TypeTechnical, TypeGeneral} {
			assert.InDelta(t, 1.0, WeightsFor(level, jt).Sum(), 1e-9, "%s/%s", level, jt)
		}
	}
}

func TestRounded(t *testing.T) {
	got := SubScores{Parsing: 33.333, KeywordRelevance: 66.66, SkillsAlignment: 12.25}.Rounded()

	assert.Equal(t, 33.3, got.Parsing)
	assert.Equal(t, 66.7, got.KeywordRelevance)
	assert.Equal(t, 12.3, got.SkillsAlignment)
}
