package ats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Neutral scores used when the job gives nothing to compare against.
const (
	NeutralKeywordScore  = 70.0
	NeutralSkillsScore   = 75.0
	NeutralCategoryScore = 80.0
	NeutralIndustryScore = 80.0

	SectionCompletenessScore = 85.0
)

// Match tiers for a single job keyword.
const (
	TierExact     = 100
	TierFuzzy     = 80
	TierSubstring = 60
	TierNone      = 0
)

var parsingSections = []string{"experience", "education", "skills", "summary", "contact"}

var sectionPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(parsingSections))
	for _, s := range parsingSections {
		out[s] = regexp.MustCompile(`\b` + s + `s?\b`)
	}
	return out
}()

var (
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe      = regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`)
	indianPhone  = regexp.MustCompile(`\b(?:\+?91[-\s]?)?[6-9]\d{4}[-\s]?\d{5}\b`)
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}\s*[-–]\s*\d{4}\b`),
		regexp.MustCompile(`\b\d{4}\s*[-–]\s*(?:present|current)\b`),
		regexp.MustCompile(`\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{4}\b`),
	}
)

// ParsingScore estimates how reliably an ATS can parse the resume structure.
func ParsingScore(resumeText string) float64 {
	lower := strings.ToLower(resumeText)
	found := 0
	for _, s := range parsingSections {
		if sectionPatterns[s].MatchString(lower) {
			found++
		}
	}
	score := float64(found) / float64(len(parsingSections)) * 40

	if emailRe.MatchString(resumeText) {
		score += 15
	}
	if phoneRe.MatchString(resumeText) || indianPhone.MatchString(resumeText) {
		score += 15
	}
	for _, p := range datePatterns {
		if p.MatchString(lower) {
			score += 20
			break
		}
	}
	if !mostlyNonASCII(resumeText) {
		score += 10
	}
	return clamp(score)
}

// mostlyNonASCII reports whether more than 5% of the runes are outside ASCII.
func mostlyNonASCII(text string) bool {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return false
	}
	nonASCII := 0
	for _, r := range text {
		if r > 0x7f {
			nonASCII++
		}
	}
	return float64(nonASCII) > float64(total)*0.05
}

// KeywordMatch records the tier a job keyword reached against the resume.
type KeywordMatch struct {
	Keyword string `json:"keyword"`
	Weight  int    `json:"weight"`
	Tier    int    `json:"tier"`
}

// MatchKeywords grades every job keyword: exact token, fuzzy token, raw substring, or none.
func MatchKeywords(resumeText string, keywords []WeightedKeyword) []KeywordMatch {
	resumeKeywords := ExtractResumeKeywords(resumeText)
	tokens := make(map[string]bool, len(resumeKeywords))
	for _, k := range resumeKeywords {
		tokens[k] = true
	}
	lower := strings.ToLower(resumeText)

	out := make([]KeywordMatch, 0, len(keywords))
	for _, kw := range keywords {
		key := strings.ToLower(strings.TrimSpace(kw.Keyword))
		tier := TierNone
		switch {
		case tokens[key]:
			tier = TierExact
		case anySimilar(key, resumeKeywords, fuzzyKeywordThreshold):
			tier = TierFuzzy
		case key != "" && strings.Contains(lower, key):
			tier = TierSubstring
		}
		out = append(out, KeywordMatch{Keyword: key, Weight: kw.Weight, Tier: tier})
	}
	return out
}

func anySimilar(key string, candidates []string, threshold float64) bool {
	for _, c := range candidates {
		if similar(key, c, threshold) {
			return true
		}
	}
	return false
}

// KeywordDensityPenalty is the keyword-stuffing penalty. It is intentionally a no-op.
func KeywordDensityPenalty(resumeText string, keywords []WeightedKeyword) float64 {
	return 0
}

// KeywordRelevance is the weight-averaged match tier minus the density penalty.
// It returns NeutralKeywordScore when the job yields no keywords.
func KeywordRelevance(resumeText string, keywords []WeightedKeyword) (float64, []KeywordMatch) {
	if len(keywords) == 0 {
		return NeutralKeywordScore, nil
	}
	matches := MatchKeywords(resumeText, keywords)
	var got, possible float64
	for _, m := range matches {
		got += float64(m.Tier * m.Weight)
		possible += float64(TierExact * m.Weight)
	}
	if possible == 0 {
		return 0, matches
	}
	score := got/possible*100 - KeywordDensityPenalty(resumeText, keywords)
	return clamp(score), matches
}

var classWeights = []struct {
	class  SkillClass
	weight float64
}{
	{ClassTechnicalHard, 0.4},
	{ClassTechnicalSoft, 0.3},
	{ClassDomainSpecific, 0.2},
	{ClassGeneralProfessional, 0.1},
}

// SkillsAlignment blends per-class skill coverage of the job's taxonomy skills.
// Classes the job does not ask for score NeutralCategoryScore; a job with no
// taxonomy skills scores NeutralSkillsScore.
func SkillsAlignment(jobSkills, resumeSkills []Skill) float64 {
	if len(jobSkills) == 0 {
		return NeutralSkillsScore
	}
	total := map[SkillClass]int{}
	matched := map[SkillClass]int{}
	for _, s := range jobSkills {
		total[s.Class]++
		if SkillPresent(s.Name, resumeSkills) {
			matched[s.Class]++
		}
	}
	score := 0.0
	for _, cw := range classWeights {
		classScore := NeutralCategoryScore
		if n := total[cw.class]; n > 0 {
			classScore = float64(matched[cw.class]) / float64(n) * 100
		}
		score += classScore * cw.weight
	}
	return clamp(score)
}

// SkillPresent reports whether skill matches any of the resume skills (ratio above 0.8).
func SkillPresent(skill string, resumeSkills []Skill) bool {
	key := strings.ToLower(skill)
	for _, rs := range resumeSkills {
		if similar(key, strings.ToLower(rs.Name), fuzzySkillThreshold) {
			return true
		}
	}
	return false
}

var (
	bulletGlyphRe = regexp.MustCompile(`[•·▪▫◦‣⁃]`)
	specialCharRe = regexp.MustCompile("[{}|~`]")
	spacingRe     = regexp.MustCompile(`\n\s*\n`)
	cleanHeaderRe = regexp.MustCompile(`(?m)^[A-Z][A-Z &/]+:?[ \t]*$`)
	fourDigitYear = regexp.MustCompile(`\b\d{4}\b`)
)

// FormatCompatibility adjusts the extractor's base score for layout signals and length.
func FormatCompatibility(resumeText string, base float64) float64 {
	score := base
	score -= 5 * float64(min(len(bulletGlyphRe.FindAllStringIndex(resumeText, -1)), 5))
	score -= 3 * float64(min(len(specialCharRe.FindAllStringIndex(resumeText, -1)), 5))
	if spacingRe.MatchString(resumeText) {
		score += 10
	}
	if cleanHeaderRe.MatchString(resumeText) {
		score += 10
	}
	if fourDigitYear.MatchString(resumeText) {
		score += 10
	}
	score += lengthAdjustment(len(strings.Fields(resumeText)))
	return clamp(score)
}

func lengthAdjustment(words int) float64 {
	switch {
	case words < 200:
		return -15
	case words > 800:
		return -10
	case words >= 300 && words <= 600:
		return 10
	default:
		return 0
	}
}

var (
	achievementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+(?:\.\d+)?%`),
		regexp.MustCompile(`[$₹€£]\s?\d+(?:,\d{2,3})*(?:\.\d{2})?\b`),
		regexp.MustCompile(`(?i)\b\d+\s*(?:million|thousand|lakh|crore|k|m)\b`),
		regexp.MustCompile(`(?i)\b\d+\+?\s*(?:years?|months?)\b`),
		regexp.MustCompile(`(?i)\b(?:increased|decreased|improved|reduced|grew|saved)\s+(?:by\s+)?\d+`),
	}
	actionVerbs = []string{
		"achieved", "managed", "led", "developed", "implemented", "created",
		"designed", "optimized", "increased", "reduced", "improved", "delivered",
	}
)

// CountAchievements counts quantified-achievement patterns in text.
func CountAchievements(resumeText string) int {
	n := 0
	for _, p := range achievementPatterns {
		n += len(p.FindAllStringIndex(resumeText, -1))
	}
	return n
}

// CountActionVerbs counts how many distinct strong action verbs appear.
func CountActionVerbs(resumeText string) int {
	lower := strings.ToLower(resumeText)
	n := 0
	for _, v := range actionVerbs {
		if containsPhrase(lower, v) {
			n++
		}
	}
	return n
}

// ContentQuality rewards quantified achievements, action verbs, and industry terminology.
func ContentQuality(resumeText string, tax *Taxonomy) float64 {
	score := 70.0
	switch a := CountAchievements(resumeText); {
	case a >= 5:
		score += 20
	case a >= 2:
		score += 10
	}
	switch v := CountActionVerbs(resumeText); {
	case v >= 8:
		score += 15
	case v >= 4:
		score += 8
	}
	terms := 0
	if tax != nil {
		terms = tax.CountIndustryTerms(resumeText)
	}
	switch {
	case terms >= 10:
		score += 10
	case terms >= 5:
		score += 5
	}
	return clamp(score)
}

// SectionCompleteness is a fixed estimate; the profile is accepted for a future per-section check.
func SectionCompleteness(resumeText string, profile map[string]any) float64 {
	return SectionCompletenessScore
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
