package ats

import (
	"github.com/pmezard/go-difflib/difflib"
)

const (
	fuzzyKeywordThreshold = 0.85
	fuzzySkillThreshold   = 0.8

	// Shorter words only match exactly; a single edit is too large a share of them.
	minFuzzyRunes = 5
)

// similar reports whether the sequence-matcher ratio of two lower-cased strings
// is above threshold. One swap of adjacent characters is forgiven, so "pyhton"
// still matches "python".
func similar(a, b string, threshold float64) bool {
	if a == b {
		return true
	}
	ra, rb := chars(a), chars(b)
	if len(ra) < minFuzzyRunes || len(rb) < minFuzzyRunes {
		return false
	}
	// Upper bound of the ratio from lengths alone.
	if 2*float64(min(len(ra), len(rb)))/float64(len(ra)+len(rb)) <= threshold {
		return false
	}
	m := difflib.NewMatcher(ra, rb)
	// Swaps keep the character multiset, so this bound holds for every variant.
	if m.QuickRatio() <= threshold {
		return false
	}
	if m.Ratio() > threshold {
		return true
	}
	for i := 0; i+1 < len(ra); i++ {
		if ra[i] == ra[i+1] {
			continue
		}
		ra[i], ra[i+1] = ra[i+1], ra[i]
		m.SetSeq1(ra)
		ok := m.Ratio() > threshold
		ra[i], ra[i+1] = ra[i+1], ra[i]
		if ok {
			return true
		}
	}
	return false
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
