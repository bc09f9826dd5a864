package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWeightedKeywords(t *testing.T) {
	tax := DefaultTaxonomy()
	cases := []struct {
		name string
		jd   string
		want []WeightedKeyword
	}{
		{
			name: "inline_markers",
			jd:   "Required: Python, required: SQL. Preferred: AWS.",
			want: []WeightedKeyword{{"python", 3}, {"sql", 3}, {"aws", 2}},
		},
		{
			name: "heading_with_bullets",
			jd:   "Requirements:\n- Python\n- 3+ years of experience with Docker\n\nNice to have: Kubernetes or Terraform.",
			want: []WeightedKeyword{{"docker", 3}, {"python", 3}, {"kubernetes", 2}, {"terraform", 2}},
		},
		{
			name: "higher_weight_wins",
			jd:   "Required: Python. Preferred: Python, Go.",
			want: []WeightedKeyword{{"python", 3}, {"go", 2}},
		},
		{
			name: "taxonomy_mentions_only",
			jd:   "Our team uses Docker and React daily.",
			want: []WeightedKeyword{{"docker", 1}, {"react", 1}},
		},
		{
			name: "empty",
			jd:   "",
			want: []WeightedKeyword{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractWeightedKeywords(tc.jd, tax))
		})
	}
}

func TestExtractWeightedKeywords_DropsLongPhrases(t *testing.T) {
	got := ExtractWeightedKeywords("Required: a bachelor degree in computer science or a related field", nil)

	assert.Equal(t, []WeightedKeyword{{"related field", 3}}, got)
}

func TestCleanKeyword(t *testing.T) {
	cases := map[string]string{
		" Experience with Kubernetes ":  "kubernetes",
		"strong knowledge of c++":       "c++",
		"5+ years of python":            "python",
		"node.js.":                      "node.js",
		"etc":                           "",
		"x":                             "",
		"2024":                          "",
		"one two three four five words": "",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanKeyword(strings.ToLower(in)), in)
	}
}

func TestExtractResumeKeywords(t *testing.T) {
	got := ExtractResumeKeywords("Go and Python3 at Acme Corp")

	assert.Contains(t, got, "go")
	assert.Contains(t, got, "and")
	assert.Contains(t, got, "acme corp")
	assert.Contains(t, got, "and python3", "bigram tokens come from whitespace splitting")
	assert.NotContains(t, got, "python", "alphabetic words must be whole tokens")
	assert.NotContains(t, got, "go and", "bigrams need both tokens longer than two letters")
	assert.NotContains(t, got, "python3 at")
	assert.IsNonDecreasing(t, got)
}
