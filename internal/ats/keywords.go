package ats

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	WeightRequired  = 3
	WeightPreferred = 2
	WeightMentioned = 1

	maxKeywordWords = 4
)

// WeightedKeyword is a job requirement and how much it counts.
type WeightedKeyword struct {
	Keyword string `json:"keyword"`
	Weight  int    `json:"weight"`
}

var (
	requiredMarkerRe  = regexp.MustCompile(`\b(?:requirements?|required|require|must\s+have|essential|mandatory)\b`)
	preferredMarkerRe = regexp.MustCompile(`\b(?:preferred|desired|nice\s+to\s+have)\b`)
	terminatorRe      = regexp.MustCompile(`[;\n!?]|\.(?:\s|$)`)
	itemSplitRe       = regexp.MustCompile(`[,/&()]|\band\b|\bor\b`)
	bulletPrefixRe    = regexp.MustCompile(`^(?:[-*•·▪◦‣]|\d+[.)])\s*`)
	leadingFillerRe   = regexp.MustCompile(`^(?:(?:a|an|the|in|with|of|for|at\s+least|minimum(?:\s+of)?|min)\s+)?` +
		`(?:\d+\+?\s*(?:years?|yrs?)\s+(?:of\s+)?)?` +
		`(?:(?:hands-on|strong|solid|proven|good|excellent|working|deep|prior|professional)\s+)?` +
		`(?:(?:experience|knowledge|proficiency|expertise|familiarity|understanding|skills?)\s+(?:with|in|of)\s+)?`)
	disallowedCharRe = regexp.MustCompile(`[^a-z0-9+#.\- ]+`)
	resumeWordRe     = regexp.MustCompile(`\b[a-zA-Z]{2,}\b`)
)

var keywordStopwords = map[string]bool{
	"etc": true, "skills": true, "experience": true, "knowledge": true, "qualifications": true,
	"the": true, "a": true, "an": true, "to": true, "in": true, "of": true, "is": true, "are": true,
}

type marker struct {
	start, end int
	weight     int
}

// ExtractWeightedKeywords derives unique lower-cased job keywords with weights.
// Phrases after required markers weigh 3, after preferred markers 2, and other
// taxonomy skills mentioned in the text 1. The result is sorted by weight then keyword.
func ExtractWeightedKeywords(jobDescription string, tax *Taxonomy) []WeightedKeyword {
	lower := strings.ToLower(jobDescription)
	weights := map[string]int{}
	add := func(kw string, w int) {
		if w > weights[kw] {
			weights[kw] = w
		}
	}

	markers := findMarkers(lower)
	for i, m := range markers {
		end := len(lower)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		for _, item := range markerItems(lower[m.end:end]) {
			add(item, m.weight)
		}
	}

	if tax != nil {
		for _, skill := range tax.FindSkills(jobDescription, false) {
			key := strings.ToLower(skill.Name)
			if _, ok := weights[key]; !ok {
				weights[key] = WeightMentioned
			}
		}
	}

	out := make([]WeightedKeyword, 0, len(weights))
	for kw, w := range weights {
		out = append(out, WeightedKeyword{Keyword: kw, Weight: w})
	}
	sortKeywords(out)
	return out
}

func findMarkers(lower string) []marker {
	var out []marker
	for _, loc := range requiredMarkerRe.FindAllStringIndex(lower, -1) {
		out = append(out, marker{start: loc[0], end: loc[1], weight: WeightRequired})
	}
	for _, loc := range preferredMarkerRe.FindAllStringIndex(lower, -1) {
		out = append(out, marker{start: loc[0], end: loc[1], weight: WeightPreferred})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// markerItems returns the cleaned list items in the text after a marker.
// A marker ending its line ("Requirements:") takes the following lines up to a blank line.
func markerItems(segment string) []string {
	head := segment
	rest := ""
	if loc := terminatorRe.FindStringIndex(segment); loc != nil {
		head = segment[:loc[0]]
		rest = segment[loc[1]:]
		if segment[loc[0]] == '\n' && strings.Trim(head, " \t:-") == "" {
			return blockItems(rest)
		}
	}
	return splitItems(head)
}

func blockItems(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(out) > 0 {
				break
			}
			continue
		}
		line = bulletPrefixRe.ReplaceAllString(line, "")
		if loc := terminatorRe.FindStringIndex(line); loc != nil {
			line = line[:loc[0]]
		}
		out = append(out, splitItems(line)...)
	}
	return out
}

func splitItems(segment string) []string {
	var out []string
	for _, part := range itemSplitRe.Split(segment, -1) {
		if kw := cleanKeyword(part); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func cleanKeyword(raw string) string {
	s := disallowedCharRe.ReplaceAllString(raw, " ")
	s = strings.Join(strings.Fields(s), " ")
	s = leadingFillerRe.ReplaceAllString(s, "")
	s = strings.Trim(s, " .-")
	if utf8.RuneCountInString(s) < 2 || keywordStopwords[s] {
		return ""
	}
	if len(strings.Fields(s)) > maxKeywordWords {
		return ""
	}
	if strings.Trim(s, "0123456789+.") == "" {
		return ""
	}
	return s
}

func sortKeywords(items []WeightedKeyword) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Weight != items[j].Weight {
			return items[i].Weight > items[j].Weight
		}
		return items[i].Keyword < items[j].Keyword
	})
}

// ExtractResumeKeywords returns the lower-cased words (alphabetic, two or more
// letters) and adjacent-word bigrams of a resume, deduplicated and sorted.
func ExtractResumeKeywords(resumeText string) []string {
	lower := strings.ToLower(resumeText)
	seen := map[string]bool{}
	for _, w := range resumeWordRe.FindAllString(lower, -1) {
		seen[w] = true
	}
	tokens := strings.Fields(lower)
	for i := 0; i+1 < len(tokens); i++ {
		if utf8.RuneCountInString(tokens[i]) > 2 && utf8.RuneCountInString(tokens[i+1]) > 2 {
			seen[tokens[i]+" "+tokens[i+1]] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
