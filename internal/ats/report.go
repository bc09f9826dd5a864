package ats

import (
	"sort"
	"strings"
)

// Report is the full result of one analysis.
type Report struct {
	TotalScore          float64          `json:"total_score"`
	Grade               string           `json:"ats_grade"`
	PassProbability     string           `json:"pass_probability"`
	StatusMessage       string           `json:"status_message"`
	Breakdown           SubScores        `json:"detailed_breakdown"`
	CriticalIssues      []string         `json:"critical_issues"`
	Recommendations     []Recommendation `json:"optimization_recommendations"`
	MissingElements     []string         `json:"missing_elements"`
	KeywordAnalysis     KeywordAnalysis  `json:"keyword_analysis"`
	CompetitiveStanding string           `json:"competitive_analysis"`
	ImprovementRoadmap  []RoadmapStep    `json:"improvement_roadmap"`
	JobLevel            JobLevel         `json:"job_level"`
	JobType             JobType          `json:"job_type"`
	Weights             WeightSet        `json:"weights"`
}

// Recommendation is one prioritized optimization.
type Recommendation struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
}

// RoadmapStep is one ordered remediation step.
type RoadmapStep struct {
	Step            int    `json:"step"`
	Task            string `json:"task"`
	EstimatedImpact string `json:"estimated_impact"`
	TimeNeeded      string `json:"time_needed"`
}

// KeywordAnalysis summarizes how the job keywords matched.
type KeywordAnalysis struct {
	MatchedKeywords int      `json:"matched_keywords"`
	TotalKeywords   int      `json:"total_job_keywords"`
	MatchPercentage float64  `json:"match_percentage"`
	Density         string   `json:"density_score"`
	TopMissing      []string `json:"top_missing"`
}

// Thresholds below which a dimension is reported as a critical issue.
const (
	criticalParsing  = 60
	criticalKeywords = 50
	criticalSkills   = 50
	criticalFormat   = 60

	recommendBelow = 70

	maxMissingElements = 5
	topJobSkills       = 10
	maxTopMissing      = 5
)

// CriticalIssues lists the threshold failures that block ATS screening.
func CriticalIssues(s SubScores) []string {
	issues := []string{}
	if s.Parsing < criticalParsing {
		issues = append(issues, "Poor resume structure - ATS cannot parse sections properly")
	}
	if s.KeywordRelevance < criticalKeywords {
		issues = append(issues, "Insufficient keyword matching with job requirements")
	}
	if s.SkillsAlignment < criticalSkills {
		issues = append(issues, "Skills do not align well with job requirements")
	}
	if s.FormatCompatibility < criticalFormat {
		issues = append(issues, "Format incompatible with ATS systems")
	}
	return issues
}

type recommendationRule struct {
	score func(SubScores) float64
	rec   Recommendation
}

var recommendationRules = []recommendationRule{
	{func(s SubScores) float64 { return s.Parsing }, Recommendation{
		Priority: "High", Category: "Structure",
		Action: "Use standard section headers (Experience, Education, Skills)",
		Impact: "Critical for ATS parsing",
	}},
	{func(s SubScores) float64 { return s.KeywordRelevance }, Recommendation{
		Priority: "High", Category: "Keywords",
		Action: "Include more job-specific keywords naturally throughout resume",
		Impact: "Increases relevance scoring",
	}},
	{func(s SubScores) float64 { return s.SkillsAlignment }, Recommendation{
		Priority: "High", Category: "Skills",
		Action: "Add technical skills mentioned in job posting",
		Impact: "Improves skill matching score",
	}},
	{func(s SubScores) float64 { return s.ExperienceMatch }, Recommendation{
		Priority: "Medium", Category: "Experience",
		Action: "State years of experience and employment dates for each relevant role",
		Impact: "Strengthens experience matching",
	}},
	{func(s SubScores) float64 { return s.FormatCompatibility }, Recommendation{
		Priority: "Medium", Category: "Formatting",
		Action: "Use a single-column layout with plain bullets and consistent dates",
		Impact: "Improves ATS readability",
	}},
	{func(s SubScores) float64 { return s.ContentQuality }, Recommendation{
		Priority: "Medium", Category: "Content",
		Action: "Add measurable achievements and strong action verbs",
		Impact: "Raises content quality score",
	}},
}

// Recommendations returns the optimizations for every dimension scoring below 70,
// ordered by priority then category.
func Recommendations(s SubScores) []Recommendation {
	out := []Recommendation{}
	for _, rule := range recommendationRules {
		if rule.score(s) < recommendBelow {
			out = append(out, rule.rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if priorityRank(out[i].Priority) != priorityRank(out[j].Priority) {
			return priorityRank(out[i].Priority) > priorityRank(out[j].Priority)
		}
		return categoryRank(out[i].Category) > categoryRank(out[j].Category)
	})
	return out
}

func priorityRank(value string) int {
	switch strings.ToLower(value) {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func categoryRank(value string) int {
	switch strings.ToUpper(value) {
	case "STRUCTURE":
		return 6
	case "KEYWORDS":
		return 5
	case "SKILLS":
		return 4
	case "EXPERIENCE":
		return 3
	case "FORMATTING":
		return 2
	case "CONTENT":
		return 1
	default:
		return 0
	}
}

// MissingElements returns up to five of the job's first ten skills that the resume lacks.
func MissingElements(jobSkills, resumeSkills []Skill) []string {
	missing := []string{}
	for i, skill := range jobSkills {
		if i >= topJobSkills {
			break
		}
		if !SkillPresent(skill.Name, resumeSkills) {
			missing = append(missing, skill.Name)
		}
	}
	if len(missing) > maxMissingElements {
		missing = missing[:maxMissingElements]
	}
	return missing
}

// AnalyzeKeywords summarizes keyword matches. Unmatched keywords are listed by weight then name.
func AnalyzeKeywords(matches []KeywordMatch, densityPenalty float64) KeywordAnalysis {
	out := KeywordAnalysis{TotalKeywords: len(matches), Density: "Optimal", TopMissing: []string{}}
	if densityPenalty > 0 {
		out.Density = "Excessive"
	}
	missing := make([]KeywordMatch, 0, len(matches))
	for _, m := range matches {
		if m.Tier > TierNone {
			out.MatchedKeywords++
		} else {
			missing = append(missing, m)
		}
	}
	if out.TotalKeywords > 0 {
		out.MatchPercentage = round1(float64(out.MatchedKeywords) / float64(out.TotalKeywords) * 100)
	}
	sort.SliceStable(missing, func(i, j int) bool {
		if missing[i].Weight != missing[j].Weight {
			return missing[i].Weight > missing[j].Weight
		}
		return missing[i].Keyword < missing[j].Keyword
	})
	for i, m := range missing {
		if i >= maxTopMissing {
			break
		}
		out.TopMissing = append(out.TopMissing, m.Keyword)
	}
	return out
}

// ImprovementRoadmap orders remediation steps for the dimensions below their critical thresholds.
func ImprovementRoadmap(s SubScores) []RoadmapStep {
	steps := []RoadmapStep{}
	add := func(task, impact, duration string) {
		steps = append(steps, RoadmapStep{Step: len(steps) + 1, Task: task, EstimatedImpact: impact, TimeNeeded: duration})
	}
	if s.Parsing < criticalParsing {
		add("Fix resume structure and formatting", "+15 points", "30 minutes")
	}
	if s.KeywordRelevance < criticalKeywords {
		add("Optimize keywords and job-specific terms", "+10-20 points", "45 minutes")
	}
	if s.SkillsAlignment < criticalSkills {
		add("Add the missing job skills to a dedicated skills section", "+10-15 points", "30 minutes")
	}
	if s.FormatCompatibility < criticalFormat {
		add("Simplify layout: plain bullets, no tables or special characters", "+5-10 points", "20 minutes")
	}
	return steps
}
