package classify

import (
	"reflect"
	"testing"

	"selectd/pkg/types"
)

func TestKeywordCodingPrompt(t *testing.T) {
	c := NewKeywordClassifier()
	got := c.Classify("Write a function to validate email addresses with regex")
	if got.Type != types.CategoryCoding {
		t.Fatalf("type=%s, want coding", got.Type)
	}
	if got.Confidence < 0.3 || got.Confidence > 0.95 {
		t.Fatalf("confidence=%v out of clamp range", got.Confidence)
	}
}

func TestKeywordConversationalPrompt(t *testing.T) {
	c := NewKeywordClassifier()
	got := c.Classify("Hi there! How are you doing today?")
	if got.Type != types.CategoryConversational {
		t.Fatalf("type=%s, want conversational", got.Type)
	}
}

func TestKeywordNoMatchFallsBackToGeneral(t *testing.T) {
	c := NewKeywordClassifier()
	got := c.Classify("zzzz qqqq xxxx")
	if got.Type != types.CategoryGeneral {
		t.Fatalf("type=%s, want general", got.Type)
	}
	if got.Confidence != 0.6 {
		t.Fatalf("confidence=%v, want fixed 0.6", got.Confidence)
	}
}

func TestKeywordDeterministic(t *testing.T) {
	c := NewKeywordClassifier()
	prompt := "Debug this function and explain why the query is slow"
	a := c.Classify(prompt)
	for i := 0; i < 5; i++ {
		b := c.Classify(prompt)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("classification not deterministic: %+v vs %+v", a, b)
		}
	}
}

func TestKeywordTieBreakEnumerationOrder(t *testing.T) {
	// "write" is a low-tier keyword for both coding and creative; with no
	// other hits both score 1 and coding wins by enumeration order.
	c := NewKeywordClassifier()
	got := c.Classify("write something")
	if got.Type != types.CategoryCoding {
		t.Fatalf("tie went to %s, want coding (first in enumeration order)", got.Type)
	}
}

func TestKeywordShortWordsMatchOnBoundaries(t *testing.T) {
	// "this" contains "hi"; only whole-word hits may score, so the prompt
	// stays general instead of drifting conversational.
	c := NewKeywordClassifier()
	got := c.Classify("Explain this concept")
	if got.Type != types.CategoryGeneral {
		t.Fatalf("type=%s, want general", got.Type)
	}
	got = c.Classify("say hi to the team for me")
	if got.Type != types.CategoryConversational {
		t.Fatalf("type=%s, want conversational", got.Type)
	}
}

func TestContainsWord(t *testing.T) {
	cases := []struct {
		text, kw string
		want     bool
	}{
		{"something new", "hi", false},
		{"hi there", "hi", true},
		{"say hi", "hi", true},
		{"hey, you", "hey", true},
		{"they left", "hey", false},
		{"whying", "why", false},
		{"why?", "why", true},
	}
	for _, tc := range cases {
		if got := containsWord(tc.text, tc.kw); got != tc.want {
			t.Fatalf("containsWord(%q, %q)=%v, want %v", tc.text, tc.kw, got, tc.want)
		}
	}
}

func TestKeywordCaseInsensitive(t *testing.T) {
	c := NewKeywordClassifier()
	upper := c.Classify("DEBUG THE REGEX IN THIS FUNCTION")
	lower := c.Classify("debug the regex in this function")
	if upper != lower {
		t.Fatalf("case changed result: %+v vs %+v", upper, lower)
	}
	if upper.Type != types.CategoryCoding {
		t.Fatalf("type=%s", upper.Type)
	}
}

func TestKeywordConfidenceRewardsDominance(t *testing.T) {
	c := NewKeywordClassifier()
	// Dense coding prompt with no cross-category hits.
	strong := c.Classify("debug the regex, fix the syntax error, refactor the algorithm in this function")
	// Single weak hit shared with creative.
	weak := c.Classify("write it")
	if strong.Confidence <= weak.Confidence {
		t.Fatalf("strong=%v should exceed weak=%v", strong.Confidence, weak.Confidence)
	}
}
