package ats

import "math"

// SubScores is the per-dimension breakdown, each 0-100.
type SubScores struct {
	Parsing             float64 `json:"resume_parsing"`
	KeywordRelevance    float64 `json:"keyword_relevance"`
	SkillsAlignment     float64 `json:"skills_alignment"`
	ExperienceMatch     float64 `json:"experience_match"`
	FormatCompatibility float64 `json:"format_compatibility"`
	ContentQuality      float64 `json:"content_quality"`
	SectionCompleteness float64 `json:"section_completeness"`
}

// WeightSet holds the blending weight of each sub-score. Adjusted sets are not re-normalized.
type WeightSet struct {
	Parsing      float64 `json:"parsing"`
	Keywords     float64 `json:"keywords"`
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Formatting   float64 `json:"formatting"`
	Content      float64 `json:"content"`
	Completeness float64 `json:"completeness"`
}

// BaseWeights is the weight set before job-level and job-type shifts.
var BaseWeights = WeightSet{
	Parsing:      0.15,
	Keywords:     0.25,
	Skills:       0.25,
	Experience:   0.15,
	Formatting:   0.05,
	Content:      0.10,
	Completeness: 0.05,
}

// WeightsFor shifts the base weights for job level and type.
func WeightsFor(level JobLevel, jobType JobType) WeightSet {
	w := BaseWeights
	switch level {
	case LevelSenior:
		w.Experience += 0.05
		w.Content += 0.05
		w.Keywords -= 0.05
		w.Completeness -= 0.05
	case LevelEntry:
		w.Skills += 0.05
		w.Keywords += 0.05
		w.Experience -= 0.10
	}
	if jobType == TypeTechnical {
		w.Skills += 0.05
		w.Keywords += 0.05
		w.Content -= 0.10
	}
	return w
}

// Sum returns the total weight, which may drift from 1.0 after shifts.
func (w WeightSet) Sum() float64 {
	return w.Parsing + w.Keywords + w.Skills + w.Experience + w.Formatting + w.Content + w.Completeness
}

// Total is the weighted sum of the sub-scores, clamped to 0-100.
func Total(s SubScores, w WeightSet) float64 {
	return clamp(s.Parsing*w.Parsing +
		s.KeywordRelevance*w.Keywords +
		s.SkillsAlignment*w.Skills +
		s.ExperienceMatch*w.Experience +
		s.FormatCompatibility*w.Formatting +
		s.ContentQuality*w.Content +
		s.SectionCompleteness*w.Completeness)
}

// Rounded returns the breakdown with every score rounded to one decimal.
func (s SubScores) Rounded() SubScores {
	return SubScores{
		Parsing:             round1(s.Parsing),
		KeywordRelevance:    round1(s.KeywordRelevance),
		SkillsAlignment:     round1(s.SkillsAlignment),
		ExperienceMatch:     round1(s.ExperienceMatch),
		FormatCompatibility: round1(s.FormatCompatibility),
		ContentQuality:      round1(s.ContentQuality),
		SectionCompleteness: round1(s.SectionCompleteness),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type band struct {
	min   float64
	label string
}

var gradeBands = []band{
	{95, "A+"}, {90, "A"}, {85, "A-"}, {80, "B+"}, {75, "B"},
	{70, "B-"}, {65, "C+"}, {60, "C"}, {50, "D"},
}

var passBands = []band{
	{90, "95-98%"}, {80, "85-90%"}, {70, "70-80%"}, {60, "50-65%"}, {50, "30-45%"},
}

var statusBands = []band{
	{90, "Excellent - Your resume will pass most ATS systems and reach human recruiters"},
	{80, "Very Good - Strong ATS compatibility with minor optimization opportunities"},
	{70, "Good - Will pass many ATS systems but has room for improvement"},
	{60, "Fair - Some ATS compatibility issues that should be addressed"},
	{50, "Poor - Significant ATS optimization needed to improve visibility"},
}

var standingBands = []band{
	{90, "Top 10% of applicants"},
	{80, "Top 25% of applicants"},
	{70, "Above average applicant pool"},
	{60, "Average applicant pool"},
}

func lookup(bands []band, score float64, fallback string) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return fallback
}

// Grade maps a total score to a letter grade using inclusive lower bounds.
func Grade(score float64) string {
	return lookup(gradeBands, score, "F")
}

// PassProbability maps a total score to an estimated screening pass band.
func PassProbability(score float64) string {
	return lookup(passBands, score, "10-25%")
}

// StatusMessage maps a total score to a human-readable verdict.
func StatusMessage(score float64) string {
	return lookup(statusBands, score, "Critical - Major ATS compatibility problems requiring immediate attention")
}

// CompetitiveStanding estimates where the resume ranks among applicants.
func CompetitiveStanding(score float64) string {
	return lookup(standingBands, score, "Below average applicant pool")
}
