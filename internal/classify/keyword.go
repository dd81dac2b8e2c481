// Package classify turns prompts into task categories using a keyword
// scorer, an embedding-based semantic scorer, and a hybrid combiner.
package classify

import (
	"strings"

	"selectd/pkg/types"
)

// Keyword tier weights: high specificity counts 3x, medium 2x, low 1x.
const (
	weightHigh   = 3
	weightMedium = 2
	weightLow    = 1
)

// keywordSet holds one category's keywords partitioned by specificity.
// Single-word keywords match on word boundaries in the lowercased prompt;
// multi-word phrases match by substring containment.
type keywordSet struct {
	High   []string
	Medium []string
	Low    []string
}

// categoryKeywords is scored in types.Categories() order; the first
// category reaching the maximum score wins ties. Deterministic but
// arbitrary, kept as documented behavior.
var categoryKeywords = map[types.Category]keywordSet{
	types.CategoryCoding: {
		High:   []string{"regex", "debug", "compile", "refactor", "stack trace", "unit test", "algorithm", "syntax error", "pull request", "segfault"},
		Medium: []string{"function", "code", "script", "bug", "variable", "class", "database", "query", "implement", "library", "api"},
		Low:    []string{"write", "build", "program", "develop", "fix", "run"},
	},
	types.CategoryCreative: {
		High:   []string{"poem", "short story", "fiction", "screenplay", "song lyrics", "haiku", "novel"},
		Medium: []string{"story", "character", "narrative", "imagine", "creative", "plot"},
		Low:    []string{"write", "compose", "describe", "idea"},
	},
	types.CategoryAnalytical: {
		High:   []string{"analyze", "analysis", "statistical", "dataset", "data set", "correlation", "regression"},
		Medium: []string{"data", "compare", "evaluate", "metrics", "trend", "breakdown"},
		Low:    []string{"numbers", "report", "chart", "summary"},
	},
	types.CategoryReasoning: {
		High:   []string{"step by step", "prove", "theorem", "logic puzzle", "deduce", "chain of thought"},
		Medium: []string{"reasoning", "logic", "solve", "puzzle", "math problem", "riddle"},
		Low:    []string{"why", "think", "problem", "because"},
	},
	types.CategoryConversational: {
		High:   []string{"hi", "hello", "how are you", "hey", "good morning", "nice to meet"},
		Medium: []string{"chat", "talk", "conversation", "feeling"},
		Low:    []string{"thanks", "please", "today"},
	},
	types.CategoryGeneral: {
		High:   []string{"what is", "who is", "when did", "where is"},
		Medium: []string{"explain", "tell me", "definition", "meaning"},
		Low:    []string{"help", "question", "general"},
	},
}

// generalFallbackConfidence is returned when no keyword matches at all.
const generalFallbackConfidence = 0.6

// KeywordClassifier scores prompts against weighted keyword sets.
// Pure and synchronous; safe for concurrent use.
type KeywordClassifier struct {
	keywords map[types.Category]keywordSet
}

// NewKeywordClassifier returns a classifier over the built-in keyword sets.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{keywords: categoryKeywords}
}

// Classify scores the prompt per category and picks the strict maximum.
// A zero maximum falls back to general with fixed 0.6 confidence.
func (c *KeywordClassifier) Classify(prompt string) types.PromptCategory {
	lower := strings.ToLower(prompt)

	best := types.CategoryGeneral
	bestScore := 0
	total := 0
	for _, cat := range types.Categories() {
		score := c.score(lower, c.keywords[cat])
		total += score
		if score > bestScore {
			bestScore = score
			best = cat
		}
	}
	if bestScore == 0 {
		return types.PromptCategory{Type: types.CategoryGeneral, Confidence: generalFallbackConfidence}
	}

	// Rewards both absolute keyword density and relative dominance over
	// the other categories.
	density := float64(bestScore) / 10
	if density > 1 {
		density = 1
	}
	dominance := float64(bestScore) / float64(total)
	confidence := clamp(0.3, 0.95, 0.6*density+0.4*dominance)
	return types.PromptCategory{Type: best, Confidence: confidence}
}

// score sums tier weights over distinct matched keywords.
func (c *KeywordClassifier) score(lower string, set keywordSet) int {
	score := 0
	for _, kw := range set.High {
		if matches(lower, kw) {
			score += weightHigh
		}
	}
	for _, kw := range set.Medium {
		if matches(lower, kw) {
			score += weightMedium
		}
	}
	for _, kw := range set.Low {
		if matches(lower, kw) {
			score += weightLow
		}
	}
	return score
}

// matches reports whether kw occurs in the lowercased prompt. Phrases
// use substring containment; single words require word boundaries so
// that short keywords like "hi" do not fire inside "something".
func matches(lower, kw string) bool {
	if strings.ContainsRune(kw, ' ') {
		return strings.Contains(lower, kw)
	}
	return containsWord(lower, kw)
}

// containsWord finds kw as a whole word: the bytes adjacent to the match
// must be absent or non-alphanumeric.
func containsWord(lower, kw string) bool {
	for from := 0; ; {
		i := strings.Index(lower[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if isBoundary(lower, start-1) && isBoundary(lower, end) {
			return true
		}
		from = start + 1
	}
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return (c < 'a' || c > 'z') && (c < '0' || c > '9')
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
