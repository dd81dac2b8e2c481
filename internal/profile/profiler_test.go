package profile

import (
	"reflect"
	"testing"

	"selectd/pkg/types"
)

func TestProfileKnownModel(t *testing.T) {
	p := New()
	d := types.ModelDescriptor{
		ID:            "anthropic/claude-3.5-sonnet",
		Name:          "Claude 3.5 Sonnet",
		ContextLength: 200_000,
		Pricing:       types.Pricing{Prompt: "0.000003", Completion: "0.000015"},
	}
	prof := p.Profile(d)
	if prof.ProfileConfidence != 0.95 {
		t.Fatalf("confidence=%v, want 0.95", prof.ProfileConfidence)
	}
	want := knownProfiles[d.ID].Scores
	if prof.Scores != want {
		t.Fatalf("scores=%+v, want curated %+v", prof.Scores, want)
	}
	if prof.Characteristics.Provider != "anthropic" {
		t.Fatalf("provider=%q", prof.Characteristics.Provider)
	}
	if prof.Characteristics.Context != types.ContextLarge {
		t.Fatalf("context tier=%q", prof.Characteristics.Context)
	}
}

func TestProfileIdempotent(t *testing.T) {
	p := New()
	d := types.ModelDescriptor{
		ID:            "somevendor/odd-model-7x",
		ContextLength: 8192,
		Pricing:       types.Pricing{Prompt: "0.0000005", Completion: "0.0000015"},
	}
	a := p.Profile(d)
	b := p.Profile(d)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("profiles differ:\n%+v\n%+v", a, b)
	}
}

func TestProfileUnknownDefaults(t *testing.T) {
	p := New()
	prof := p.Profile(types.ModelDescriptor{ID: "nobody/mystery"})
	s := prof.Scores
	for _, v := range []float64{s.Coding, s.Creative, s.Analytical, s.Reasoning, s.Conversational, s.General} {
		if v != 0.5 {
			t.Fatalf("expected 0.5 baseline, got %+v", s)
		}
	}
	if prof.ProfileConfidence != 0.4 {
		t.Fatalf("confidence=%v, want 0.4 base", prof.ProfileConfidence)
	}
	if prof.Characteristics.ModelFamily != "unknown" {
		t.Fatalf("family=%q", prof.Characteristics.ModelFamily)
	}
	if prof.Characteristics.Cost != types.CostFree {
		t.Fatalf("cost tier=%q for empty pricing", prof.Characteristics.Cost)
	}
}

func TestProfileScoreBounds(t *testing.T) {
	p := New()
	descs := []types.ModelDescriptor{
		{ID: "openai/gpt-4-ultra-hypothetical", ContextLength: 2_000_000, Pricing: types.Pricing{Prompt: "0.05", Completion: "0.1"}},
		{ID: "anthropic/claude-3.5-next", ContextLength: 500_000, Pricing: types.Pricing{Prompt: "0.00001", Completion: "0.00003"}},
		{ID: "x/y", ContextLength: 0},
		{ID: "deepseek/deepseek-r1-distill", ContextLength: 64_000, Pricing: types.Pricing{Prompt: "bogus", Completion: ""}},
	}
	for _, d := range descs {
		prof := p.Profile(d)
		s := prof.Scores
		for _, v := range []float64{s.Coding, s.Creative, s.Analytical, s.Reasoning, s.Conversational, s.General, prof.ProfileConfidence} {
			if v < 0 || v > 1 {
				t.Fatalf("id=%s out-of-range value %v in %+v", d.ID, v, prof)
			}
		}
	}
}

func TestInferredConfidenceMonotonic(t *testing.T) {
	longDesc := "A fairly long model description that easily exceeds fifty characters."
	p := New()
	base := p.Profile(types.ModelDescriptor{ID: "acme/widget"}).ProfileConfidence
	known := p.Profile(types.ModelDescriptor{ID: "openai/widget"}).ProfileConfidence
	rich := p.Profile(types.ModelDescriptor{ID: "openai/widget", Description: longDesc}).ProfileConfidence
	if !(base < known && known < rich) {
		t.Fatalf("confidence not monotonic: %v %v %v", base, known, rich)
	}
	if rich > 0.8 {
		t.Fatalf("inferred confidence above cap: %v", rich)
	}
}

func TestTierDerivation(t *testing.T) {
	cases := []struct {
		id    string
		ctx   int
		price string
		speed types.SpeedTier
		cost  types.CostTier
		acc   types.AccuracyTier
		tier  types.ContextTier
	}{
		{"acme/zippy-turbo", 16_000, "0.00000005", types.SpeedUltraFast, types.CostCheap, types.AccuracyBasic, types.ContextSmall},
		{"acme/big-opus-like", 1_500_000, "0.02", types.SpeedSlow, types.CostPremium, types.AccuracyExcellent, types.ContextHuge},
		{"meta-llama/llama-2-70b", 32_000, "0.0005", types.SpeedMedium, types.CostModerate, types.AccuracyHigh, types.ContextMedium},
		{"acme/tiny-8b", 128_000, "0", types.SpeedFast, types.CostFree, types.AccuracyBasic, types.ContextLarge},
	}
	p := New()
	for _, c := range cases {
		prof := p.Profile(types.ModelDescriptor{ID: c.id, ContextLength: c.ctx, Pricing: types.Pricing{Prompt: c.price, Completion: c.price}})
		ch := prof.Characteristics
		if ch.Speed != c.speed || ch.Cost != c.cost || ch.Accuracy != c.acc || ch.Context != c.tier {
			t.Fatalf("id=%s got %+v, want speed=%s cost=%s acc=%s ctx=%s", c.id, ch, c.speed, c.cost, c.acc, c.tier)
		}
	}
}

func TestFamilyFirstMatchWins(t *testing.T) {
	cases := map[string]string{
		"openai/gpt-4o-2024":          "gpt-4o",
		"openai/gpt-4-turbo":          "gpt-4",
		"anthropic/claude-3.5-sonnet": "claude-3.5",
		"anthropic/claude-3-haiku":    "claude-3",
		"meta-llama/llama-3.1-8b":     "llama-3",
		"vendor/who-knows":            "unknown",
	}
	for id, want := range cases {
		if got := familyOf(id); got != want {
			t.Fatalf("familyOf(%q)=%q, want %q", id, got, want)
		}
	}
}
