package ats

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// JobLevel is the seniority inferred from a job description.
type JobLevel string

const (
	LevelEntry  JobLevel = "entry"
	LevelMid    JobLevel = "mid"
	LevelSenior JobLevel = "senior"
)

// JobType separates technical roles from general ones.
type JobType string

const (
	TypeTechnical JobType = "technical"
	TypeGeneral   JobType = "general"
)

const (
	RoleProgressionScore         = 80.0
	ResponsibilityAlignmentScore = 75.0

	maxCareerYears = 50
)

var (
	// Level and type markers match at the start of a word with any suffix, so
	// "leadership" reads as senior and "internship" as entry.
	seniorRe    = regexp.MustCompile(`\b(?:senior|lead|principal|manager)`)
	entryRe     = regexp.MustCompile(`\b(?:junior|entry|graduate|intern)`)
	technicalRe = regexp.MustCompile(`\b(?:developer|engineer|programmer|technical)`)

	requiredYearsRe = regexp.MustCompile(`\b(\d{1,2})\s*\+?\s*(?:(?:-|–|to)\s*\d{1,2}\s*)?(?:years?|yrs?)\b`)
	statedYearsRe   = regexp.MustCompile(`\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)
	yearRangeRe     = regexp.MustCompile(`\b((?:19|20)\d{2})\s*(?:-|–|to)\s*((?:19|20)\d{2}|present|current|now)\b`)
)

// DetectJobLevel infers seniority from text; senior markers win over entry ones.
func DetectJobLevel(text string) JobLevel {
	lower := strings.ToLower(text)
	switch {
	case seniorRe.MatchString(lower):
		return LevelSenior
	case entryRe.MatchString(lower):
		return LevelEntry
	default:
		return LevelMid
	}
}

// DetectJobType reports whether the job reads as a technical role.
func DetectJobType(jobDescription string) JobType {
	if technicalRe.MatchString(strings.ToLower(jobDescription)) {
		return TypeTechnical
	}
	return TypeGeneral
}

// RequiredYears returns the largest lower bound of "N years" / "N+ years" / "N-M years" in the job text.
func RequiredYears(jobDescription string) int {
	best := 0
	for _, m := range requiredYearsRe.FindAllStringSubmatch(strings.ToLower(jobDescription), -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	return best
}

// CandidateYears returns the larger of stated years and summed employment ranges.
// Open ranges ("2021 - present") end at now.
func CandidateYears(resumeText string, now time.Time) int {
	lower := strings.ToLower(resumeText)
	stated := 0
	for _, m := range statedYearsRe.FindAllStringSubmatch(lower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > stated {
			stated = n
		}
	}
	summed := 0
	for _, m := range yearRangeRe.FindAllStringSubmatch(lower, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := now.Year()
		if n, err := strconv.Atoi(m[2]); err == nil {
			end = n
		}
		if end > start {
			summed += end - start
		}
	}
	if summed > maxCareerYears {
		summed = maxCareerYears
	}
	return max(stated, summed)
}

// YearsMatch scores candidate years against the requirement.
func YearsMatch(required, candidate int) float64 {
	switch {
	case candidate >= required:
		return 95
	case float64(candidate) >= float64(required)*0.7:
		return 75
	default:
		return 50
	}
}

// IndustryRelevance is the share of job industries the resume also shows.
func IndustryRelevance(jobIndustries, resumeIndustries []string) float64 {
	if len(jobIndustries) == 0 {
		return NeutralIndustryScore
	}
	have := make(map[string]bool, len(resumeIndustries))
	for _, ind := range resumeIndustries {
		have[ind] = true
	}
	matched := 0
	for _, ind := range jobIndustries {
		if have[ind] {
			matched++
		}
	}
	return float64(matched) / float64(len(jobIndustries)) * 100
}

// RoleProgression is a fixed estimate pending title-history analysis.
func RoleProgression(resumeText string, level JobLevel) float64 {
	return RoleProgressionScore
}

// ResponsibilityAlignment is a fixed estimate pending duty-level comparison.
func ResponsibilityAlignment(jobDescription, resumeText string) float64 {
	return ResponsibilityAlignmentScore
}

// ExperienceMatch combines years (0.3), industry (0.25), progression (0.25), and responsibilities (0.2).
func ExperienceMatch(resumeText, jobDescription string, tax *Taxonomy, now time.Time) float64 {
	years := YearsMatch(RequiredYears(jobDescription), CandidateYears(resumeText, now))
	var jobInd, resumeInd []string
	if tax != nil {
		jobInd = tax.FindIndustries(jobDescription)
		resumeInd = tax.FindIndustries(resumeText)
	}
	industry := IndustryRelevance(jobInd, resumeInd)
	progression := RoleProgression(resumeText, DetectJobLevel(jobDescription))
	responsibility := ResponsibilityAlignment(jobDescription, resumeText)
	return clamp(years*0.3 + industry*0.25 + progression*0.25 + responsibility*0.2)
}
