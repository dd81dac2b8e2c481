package profile

import (
	"strconv"
	"strings"

	"selectd/pkg/types"
)

// baselineScore is the starting value for every capability axis when no
// curated entry exists.
const baselineScore = 0.5

// familyPatterns maps id substrings to model families. Ordered: the first
// match wins, so more specific patterns come before their prefixes.
var familyPatterns = []struct {
	substr string
	family string
}{
	{"gpt-4o", "gpt-4o"},
	{"gpt-4", "gpt-4"},
	{"gpt-3.5", "gpt-3.5"},
	{"o1", "o1"},
	{"claude-3.5", "claude-3.5"},
	{"claude-3", "claude-3"},
	{"claude", "claude"},
	{"gemini", "gemini"},
	{"deepseek-r1", "deepseek-r1"},
	{"deepseek", "deepseek"},
	{"llama-3", "llama-3"},
	{"llama", "llama"},
	{"mixtral", "mixtral"},
	{"mistral", "mistral"},
	{"qwq", "qwq"},
	{"qwen", "qwen"},
	{"command", "command"},
	{"phi", "phi"},
}

// reasoningFamilies lists families treated as reasoning-capable.
var reasoningFamilies = map[string]bool{
	"o1":          true,
	"gpt-4o":      true,
	"claude-3.5":  true,
	"deepseek-r1": true,
	"qwq":         true,
}

// multimodalSubstrings mark ids of models that accept non-text input.
var multimodalSubstrings = []string{"vision", "gpt-4o", "gpt-4", "claude-3", "gemini"}

// providerAdjust nudges specific axes for providers with a known track
// record. Values are additive on top of the 0.5 baseline.
var providerAdjust = map[string]types.CapabilityScores{
	"openai":     {Coding: 0.15, Analytical: 0.1, General: 0.1},
	"anthropic":  {Coding: 0.15, Reasoning: 0.15, Creative: 0.1},
	"google":     {Analytical: 0.1, General: 0.1, Conversational: 0.05},
	"meta-llama": {Conversational: 0.1, General: 0.1},
	"mistralai":  {Coding: 0.1, General: 0.05},
	"deepseek":   {Coding: 0.2, Reasoning: 0.1},
	"cohere":     {Conversational: 0.1, Creative: 0.05},
}

// familyAdjust adds further nudges for known strong families.
var familyAdjust = map[string]types.CapabilityScores{
	"gpt-4o":      {Coding: 0.1, Reasoning: 0.1, Conversational: 0.1},
	"gpt-4":       {Coding: 0.1, Analytical: 0.1},
	"o1":          {Reasoning: 0.2, Analytical: 0.15},
	"claude-3.5":  {Coding: 0.15, Reasoning: 0.1},
	"claude-3":    {Creative: 0.1, Reasoning: 0.1},
	"gemini":      {Analytical: 0.1},
	"deepseek-r1": {Reasoning: 0.2, Coding: 0.1},
	"llama-3":     {General: 0.1},
	"qwq":         {Reasoning: 0.15},
}

// infer builds a best-effort profile for a descriptor absent from the
// curated table.
func (p *Profiler) infer(d types.ModelDescriptor) types.ModelProfile {
	id := strings.ToLower(d.ID)
	provider := providerOf(d.ID)
	family := familyOf(d.ID)
	avgCost := avgCostPerToken(d.Pricing)

	scores := types.CapabilityScores{
		Coding:         baselineScore,
		Creative:       baselineScore,
		Analytical:     baselineScore,
		Reasoning:      baselineScore,
		Conversational: baselineScore,
		General:        baselineScore,
	}
	if adj, ok := providerAdjust[provider]; ok {
		addScores(&scores, adj)
	}
	if adj, ok := familyAdjust[family]; ok {
		addScores(&scores, adj)
	}
	// Price is a weak but real proxy for provider-claimed quality when no
	// curated data exists.
	bonus := avgCost * 1000
	if bonus > 0.15 {
		bonus = 0.15
	}
	addScores(&scores, types.CapabilityScores{
		Coding: bonus, Creative: bonus, Analytical: bonus,
		Reasoning: bonus, Conversational: bonus, General: bonus,
	})
	clampScores(&scores)

	return types.ModelProfile{
		Descriptor: d,
		Scores:     scores,
		Characteristics: types.Characteristics{
			Speed:        speedTier(id),
			Cost:         costTier(avgCost),
			Accuracy:     accuracyTier(id, provider),
			Context:      contextTier(d.ContextLength),
			Provider:     provider,
			ModelFamily:  family,
			IsReasoning:  reasoningFamilies[family],
			IsMultimodal: isMultimodal(id),
		},
		ProfileConfidence: inferredConfidence(provider, d.Description),
	}
}

func familyOf(id string) string {
	lower := strings.ToLower(id)
	for _, p := range familyPatterns {
		if strings.Contains(lower, p.substr) {
			return p.family
		}
	}
	return "unknown"
}

func addScores(dst *types.CapabilityScores, add types.CapabilityScores) {
	dst.Coding += add.Coding
	dst.Creative += add.Creative
	dst.Analytical += add.Analytical
	dst.Reasoning += add.Reasoning
	dst.Conversational += add.Conversational
	dst.General += add.General
}

func clampScores(s *types.CapabilityScores) {
	s.Coding = clamp01(s.Coding)
	s.Creative = clamp01(s.Creative)
	s.Analytical = clamp01(s.Analytical)
	s.Reasoning = clamp01(s.Reasoning)
	s.Conversational = clamp01(s.Conversational)
	s.General = clamp01(s.General)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// avgCostPerToken averages prompt and completion per-token prices.
// Malformed decimals count as zero rather than failing the profile.
func avgCostPerToken(p types.Pricing) float64 {
	prompt, _ := strconv.ParseFloat(p.Prompt, 64)
	completion, _ := strconv.ParseFloat(p.Completion, 64)
	return (prompt + completion) / 2
}

func speedTier(id string) types.SpeedTier {
	switch {
	case containsAny(id, "turbo", "flash", "haiku", "mini"):
		return types.SpeedUltraFast
	case containsAny(id, "3.5", "8b", "small"):
		return types.SpeedFast
	case containsAny(id, "opus", "405b"):
		return types.SpeedSlow
	default:
		return types.SpeedMedium
	}
}

func costTier(avg float64) types.CostTier {
	switch {
	case avg == 0:
		return types.CostFree
	case avg < 1e-4:
		return types.CostCheap
	case avg < 1e-3:
		return types.CostModerate
	case avg < 1e-2:
		return types.CostExpensive
	default:
		return types.CostPremium
	}
}

func accuracyTier(id, provider string) types.AccuracyTier {
	switch {
	case containsAny(id, "opus", "gpt-4o", "405b"):
		return types.AccuracyExcellent
	case containsAny(id, "sonnet", "gpt-4", "70b"):
		return types.AccuracyHigh
	case provider == "openai" || provider == "anthropic":
		return types.AccuracyGood
	default:
		return types.AccuracyBasic
	}
}

func contextTier(contextLength int) types.ContextTier {
	switch {
	case contextLength >= 1_000_000:
		return types.ContextHuge
	case contextLength >= 100_000:
		return types.ContextLarge
	case contextLength >= 32_000:
		return types.ContextMedium
	default:
		return types.ContextSmall
	}
}

func isMultimodal(id string) bool {
	return containsAny(id, multimodalSubstrings...)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// inferredConfidence starts at 0.4 and grows with provider reputation and
// description richness, capped at 0.8.
func inferredConfidence(provider, description string) float64 {
	c := 0.4
	switch provider {
	case "openai", "anthropic", "google":
		c += 0.2
	}
	if len(description) > 50 {
		c += 0.1
	}
	if c > 0.8 {
		c = 0.8
	}
	return c
}
