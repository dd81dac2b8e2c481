package profile

import "selectd/pkg/types"

// knownProfile is one curated table entry. Scores and tiers are hand-set
// estimates, kept separate from the inference code so the table can grow
// without touching any algorithm.
type knownProfile struct {
	Scores       types.CapabilityScores
	Speed        types.SpeedTier
	Cost         types.CostTier
	Accuracy     types.AccuracyTier
	IsReasoning  bool
	IsMultimodal bool
}

// knownProfiles maps feed model ids to curated capability estimates.
// These are heuristic judgements, not benchmark results.
var knownProfiles = map[string]knownProfile{
	"openai/gpt-4o": {
		Scores:       types.CapabilityScores{Coding: 0.9, Creative: 0.85, Analytical: 0.9, Reasoning: 0.85, Conversational: 0.9, General: 0.9},
		Speed:        types.SpeedFast,
		Cost:         types.CostExpensive,
		Accuracy:     types.AccuracyExcellent,
		IsReasoning:  true,
		IsMultimodal: true,
	},
	"openai/gpt-4o-mini": {
		Scores:       types.CapabilityScores{Coding: 0.8, Creative: 0.75, Analytical: 0.75, Reasoning: 0.7, Conversational: 0.85, General: 0.8},
		Speed:        types.SpeedUltraFast,
		Cost:         types.CostCheap,
		Accuracy:     types.AccuracyHigh,
		IsMultimodal: true,
	},
	"openai/gpt-4-turbo": {
		Scores:       types.CapabilityScores{Coding: 0.88, Creative: 0.82, Analytical: 0.87, Reasoning: 0.82, Conversational: 0.85, General: 0.87},
		Speed:        types.SpeedMedium,
		Cost:         types.CostExpensive,
		Accuracy:     types.AccuracyExcellent,
		IsReasoning:  true,
		IsMultimodal: true,
	},
	"openai/gpt-3.5-turbo": {
		Scores:   types.CapabilityScores{Coding: 0.65, Creative: 0.65, Analytical: 0.6, Reasoning: 0.55, Conversational: 0.8, General: 0.7},
		Speed:    types.SpeedUltraFast,
		Cost:     types.CostCheap,
		Accuracy: types.AccuracyGood,
	},
	"openai/o1": {
		Scores:      types.CapabilityScores{Coding: 0.92, Creative: 0.7, Analytical: 0.95, Reasoning: 0.97, Conversational: 0.7, General: 0.85},
		Speed:       types.SpeedSlow,
		Cost:        types.CostPremium,
		Accuracy:    types.AccuracyExcellent,
		IsReasoning: true,
	},
	"openai/o1-mini": {
		Scores:      types.CapabilityScores{Coding: 0.85, Creative: 0.6, Analytical: 0.88, Reasoning: 0.9, Conversational: 0.6, General: 0.75},
		Speed:       types.SpeedMedium,
		Cost:        types.CostExpensive,
		Accuracy:    types.AccuracyHigh,
		IsReasoning: true,
	},
	"anthropic/claude-3.5-sonnet": {
		Scores:       types.CapabilityScores{Coding: 0.93, Creative: 0.88, Analytical: 0.9, Reasoning: 0.9, Conversational: 0.88, General: 0.9},
		Speed:        types.SpeedFast,
		Cost:         types.CostExpensive,
		Accuracy:     types.AccuracyExcellent,
		IsReasoning:  true,
		IsMultimodal: true,
	},
	"anthropic/claude-3-opus": {
		Scores:       types.CapabilityScores{Coding: 0.9, Creative: 0.92, Analytical: 0.92, Reasoning: 0.93, Conversational: 0.87, General: 0.9},
		Speed:        types.SpeedSlow,
		Cost:         types.CostPremium,
		Accuracy:     types.AccuracyExcellent,
		IsReasoning:  true,
		IsMultimodal: true,
	},
	"anthropic/claude-3-haiku": {
		Scores:       types.CapabilityScores{Coding: 0.72, Creative: 0.7, Analytical: 0.7, Reasoning: 0.65, Conversational: 0.82, General: 0.75},
		Speed:        types.SpeedUltraFast,
		Cost:         types.CostCheap,
		Accuracy:     types.AccuracyGood,
		IsMultimodal: true,
	},
	"google/gemini-pro-1.5": {
		Scores:       types.CapabilityScores{Coding: 0.82, Creative: 0.8, Analytical: 0.85, Reasoning: 0.82, Conversational: 0.8, General: 0.85},
		Speed:        types.SpeedMedium,
		Cost:         types.CostModerate,
		Accuracy:     types.AccuracyHigh,
		IsReasoning:  true,
		IsMultimodal: true,
	},
	"google/gemini-flash-1.5": {
		Scores:       types.CapabilityScores{Coding: 0.75, Creative: 0.72, Analytical: 0.75, Reasoning: 0.68, Conversational: 0.78, General: 0.78},
		Speed:        types.SpeedUltraFast,
		Cost:         types.CostCheap,
		Accuracy:     types.AccuracyGood,
		IsMultimodal: true,
	},
	"meta-llama/llama-3.1-405b-instruct": {
		Scores:      types.CapabilityScores{Coding: 0.85, Creative: 0.8, Analytical: 0.85, Reasoning: 0.85, Conversational: 0.8, General: 0.85},
		Speed:       types.SpeedSlow,
		Cost:        types.CostModerate,
		Accuracy:    types.AccuracyExcellent,
		IsReasoning: true,
	},
	"meta-llama/llama-3.1-70b-instruct": {
		Scores:   types.CapabilityScores{Coding: 0.78, Creative: 0.75, Analytical: 0.78, Reasoning: 0.75, Conversational: 0.78, General: 0.8},
		Speed:    types.SpeedFast,
		Cost:     types.CostCheap,
		Accuracy: types.AccuracyHigh,
	},
	"meta-llama/llama-3.1-8b-instruct": {
		Scores:   types.CapabilityScores{Coding: 0.6, Creative: 0.6, Analytical: 0.58, Reasoning: 0.55, Conversational: 0.7, General: 0.65},
		Speed:    types.SpeedUltraFast,
		Cost:     types.CostFree,
		Accuracy: types.AccuracyBasic,
	},
	"mistralai/mistral-large": {
		Scores:      types.CapabilityScores{Coding: 0.8, Creative: 0.75, Analytical: 0.8, Reasoning: 0.78, Conversational: 0.75, General: 0.8},
		Speed:       types.SpeedMedium,
		Cost:        types.CostModerate,
		Accuracy:    types.AccuracyHigh,
		IsReasoning: true,
	},
	"deepseek/deepseek-chat": {
		Scores:   types.CapabilityScores{Coding: 0.85, Creative: 0.65, Analytical: 0.78, Reasoning: 0.75, Conversational: 0.7, General: 0.75},
		Speed:    types.SpeedFast,
		Cost:     types.CostCheap,
		Accuracy: types.AccuracyHigh,
	},
	"deepseek/deepseek-r1": {
		Scores:      types.CapabilityScores{Coding: 0.88, Creative: 0.6, Analytical: 0.9, Reasoning: 0.93, Conversational: 0.6, General: 0.78},
		Speed:       types.SpeedSlow,
		Cost:        types.CostCheap,
		Accuracy:    types.AccuracyExcellent,
		IsReasoning: true,
	},
}
