package types

// Category is one of the six fixed task types a prompt is classified into.
type Category string

const (
	CategoryCoding         Category = "coding"
	CategoryCreative       Category = "creative"
	CategoryAnalytical     Category = "analytical"
	CategoryReasoning      Category = "reasoning"
	CategoryConversational Category = "conversational"
	CategoryGeneral        Category = "general"
)

// Categories lists all categories in their canonical enumeration order.
// Classifier tie-breaks depend on this order; do not reorder.
func Categories() []Category {
	return []Category{
		CategoryCoding,
		CategoryCreative,
		CategoryAnalytical,
		CategoryReasoning,
		CategoryConversational,
		CategoryGeneral,
	}
}

// Pricing holds per-token costs as exact decimal strings, as delivered by
// the model feed. Parsing to float happens at profiling time only.
type Pricing struct {
	// Cost per prompt token in USD.
	// example: 0.000003
	Prompt string `json:"prompt"`
	// Cost per completion token in USD.
	// example: 0.000015
	Completion string `json:"completion"`
}

// ModelDescriptor is the raw, read-only record for one externally hosted
// model as returned by the model source feed.
type ModelDescriptor struct {
	// Globally unique id in "<provider>/<family>[:variant]" form.
	// example: anthropic/claude-3.5-sonnet
	ID string `json:"id"`
	// Human-friendly name.
	// example: Claude 3.5 Sonnet
	Name string `json:"name"`
	// Free-form description from the provider.
	Description string `json:"description,omitempty"`
	// Maximum input+output tokens.
	// example: 200000
	ContextLength int `json:"context_length"`
	// Per-token pricing.
	Pricing Pricing `json:"pricing"`
	// Optional cap on completion tokens.
	// example: 8192
	MaxCompletionTokens int `json:"max_completion_tokens,omitempty"`
	// Whether the host moderates this model's traffic.
	IsModerated bool `json:"is_moderated,omitempty"`
}

// CapabilityScores are six independent axes in [0,1]. They are not a
// distribution; no invariant ties them together.
type CapabilityScores struct {
	Coding         float64 `json:"coding"`
	Creative       float64 `json:"creative"`
	Analytical     float64 `json:"analytical"`
	Reasoning      float64 `json:"reasoning"`
	Conversational float64 `json:"conversational"`
	General        float64 `json:"general"`
}

// ForCategory returns the score on the axis matching cat.
func (s CapabilityScores) ForCategory(cat Category) float64 {
	switch cat {
	case CategoryCoding:
		return s.Coding
	case CategoryCreative:
		return s.Creative
	case CategoryAnalytical:
		return s.Analytical
	case CategoryReasoning:
		return s.Reasoning
	case CategoryConversational:
		return s.Conversational
	default:
		return s.General
	}
}

// Tier vocabularies for derived model characteristics.
type (
	SpeedTier    string
	CostTier     string
	AccuracyTier string
	ContextTier  string
)

const (
	SpeedUltraFast SpeedTier = "ultra-fast"
	SpeedFast      SpeedTier = "fast"
	SpeedMedium    SpeedTier = "medium"
	SpeedSlow      SpeedTier = "slow"

	CostFree      CostTier = "free"
	CostCheap     CostTier = "cheap"
	CostModerate  CostTier = "moderate"
	CostExpensive CostTier = "expensive"
	CostPremium   CostTier = "premium"

	AccuracyBasic     AccuracyTier = "basic"
	AccuracyGood      AccuracyTier = "good"
	AccuracyHigh      AccuracyTier = "high"
	AccuracyExcellent AccuracyTier = "excellent"

	ContextSmall  ContextTier = "small"
	ContextMedium ContextTier = "medium"
	ContextLarge  ContextTier = "large"
	ContextHuge   ContextTier = "huge"
)

// Characteristics are categorical/derived attributes of one model.
type Characteristics struct {
	Speed        SpeedTier    `json:"speed"`
	Cost         CostTier     `json:"cost"`
	Accuracy     AccuracyTier `json:"accuracy"`
	Context      ContextTier  `json:"context"`
	Provider     string       `json:"provider"`
	ModelFamily  string       `json:"model_family"`
	IsReasoning  bool         `json:"is_reasoning"`
	IsMultimodal bool         `json:"is_multimodal"`
}

// ModelProfile aggregates a descriptor with derived scores and
// characteristics. Immutable once created; replaced wholesale when the
// catalog cache rebuilds.
type ModelProfile struct {
	Descriptor      ModelDescriptor  `json:"descriptor"`
	Scores          CapabilityScores `json:"scores"`
	Characteristics Characteristics  `json:"characteristics"`
	// Confidence in the profile itself: 0.95 for curated entries,
	// 0.4-0.8 for inferred ones.
	// example: 0.95
	ProfileConfidence float64 `json:"profile_confidence"`
}

// PromptProperties is the caller-supplied vector of soft requirements.
type PromptProperties struct {
	// Importance of answer accuracy, 0..1 (higher = more important).
	// example: 0.95
	Accuracy float64 `json:"accuracy"`
	// Cost sensitivity, 0..1. Higher = LESS cost-sensitive (budget no
	// object); low values steer selection toward cheap or free tiers.
	// example: 0.4
	Cost float64 `json:"cost"`
	// Importance of response speed, 0..1 (higher = more important).
	// example: 0.8
	Speed float64 `json:"speed"`
	// Requested completion token budget.
	// example: 3000
	TokenLimit int `json:"token_limit"`
	// Whether the task needs a reasoning-capable model.
	// example: true
	Reasoning bool `json:"reasoning"`
}

// PromptCategory is a classification outcome: a category plus confidence.
type PromptCategory struct {
	// example: coding
	Type Category `json:"type"`
	// example: 0.87
	Confidence float64 `json:"confidence"`
}

// ModelSelection is the final recommendation for one prompt.
type ModelSelection struct {
	// Selected model id; always a member of the candidate set.
	// example: anthropic/claude-3.5-sonnet
	Model string `json:"model"`
	// Human-readable rationale.
	Reason string `json:"reason"`
	// example: 0.85
	Confidence float64 `json:"confidence"`
	// Category the prompt was classified into.
	Category PromptCategory `json:"category"`
}
