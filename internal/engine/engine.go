// Package engine runs the selection pipeline: filter the profile catalog,
// classify the prompt, brief an external decision collaborator, and fall
// back deterministically when that collaborator misbehaves.
package engine

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"selectd/internal/analytics"
	"selectd/internal/catalog"
	"selectd/internal/classify"
	"selectd/pkg/types"
)

// minCategoryScore is the relevance threshold a candidate's category axis
// must reach to stay in the candidate set.
const minCategoryScore = 0.3

// fallbackConfidence is the fixed confidence of a deterministic fallback
// selection.
const fallbackConfidence = 0.5

var (
	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "selectd",
			Subsystem: "engine",
			Name:      "recommendations_total",
			Help:      "Recommendations served, by category",
		},
		[]string{"category"},
	)
	fallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "selectd",
		Subsystem: "engine",
		Name:      "decision_fallbacks_total",
		Help:      "Recommendations resolved by the deterministic fallback",
	})
	noCandidatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "selectd",
		Subsystem: "engine",
		Name:      "no_candidates_total",
		Help:      "Recommend calls that emptied the candidate set",
	})
)

func init() {
	prometheus.MustRegister(recommendationsTotal, fallbacksTotal, noCandidatesTotal)
}

// Config wires the engine's collaborators. Cache, Classifier and Decider
// are required; Analytics may be nil.
type Config struct {
	Cache      *catalog.Cache
	Classifier *classify.HybridClassifier
	Decider    Decider
	Analytics  *analytics.Publisher
	Logger     zerolog.Logger
}

// Engine is the public selection surface. Construct with New; safe for
// concurrent use.
type Engine struct {
	cache      *catalog.Cache
	classifier *classify.HybridClassifier
	decider    Decider
	analytics  *analytics.Publisher
	log        zerolog.Logger

	initialized atomic.Bool
	startedAt   time.Time

	recommendations atomic.Uint64
	fallbacks       atomic.Uint64
}

// New builds an Engine from cfg.
func New(cfg Config) *Engine {
	return &Engine{
		cache:      cfg.Cache,
		classifier: cfg.Classifier,
		decider:    cfg.Decider,
		analytics:  cfg.Analytics,
		log:        cfg.Logger,
		startedAt:  time.Now(),
	}
}

// Initialize populates the catalog cache. It must complete before
// Recommend is usable; a fetch failure here is fatal to the call and
// leaves the engine uninitialized.
func (e *Engine) Initialize(ctx context.Context) error {
	profiles, err := e.cache.Profiles(ctx)
	if err != nil {
		return err
	}
	e.initialized.Store(true)
	e.log.Info().Int("profiles", len(profiles)).Msg("engine initialized")
	return nil
}

// Ready reports whether Initialize has succeeded.
func (e *Engine) Ready() bool { return e.initialized.Load() }

// ListProfiles returns the current catalog snapshot, refreshing it under
// the cache's TTL rules.
func (e *Engine) ListProfiles(ctx context.Context) ([]types.ModelProfile, error) {
	return e.cache.Profiles(ctx)
}

// ClearCache forces the catalog back to empty. The next read refetches.
func (e *Engine) ClearCache() { e.cache.Clear() }

// Status reports engine and cache health for the status endpoint.
func (e *Engine) Status() types.StatusResponse {
	count, last, ttl := e.cache.Stats()
	var lastUnix, remaining int64
	if !last.IsZero() {
		lastUnix = last.Unix()
		remaining = int64(time.Until(last.Add(ttl)).Seconds())
	}
	return types.StatusResponse{
		CatalogReady:         count > 0,
		ProfileCount:         count,
		LastRefreshedUnix:    lastUnix,
		TTLRemainingSeconds:  remaining,
		RecommendationsTotal: e.recommendations.Load(),
		FallbacksTotal:       e.fallbacks.Load(),
		UptimeSeconds:        int64(time.Since(e.startedAt).Seconds()),
		ServerTimeUnix:       time.Now().Unix(),
	}
}

// Recommend routes a prompt to the most suitable model id. Returns a
// valid selection or one of the uninitialized / no-suitable-models /
// catalog-fetch errors; decision-collaborator failures are absorbed by
// the deterministic fallback.
func (e *Engine) Recommend(ctx context.Context, prompt string, props types.PromptProperties) (types.ModelSelection, error) {
	if !e.initialized.Load() {
		return types.ModelSelection{}, ErrUninitialized()
	}
	start := time.Now()

	profiles, err := e.cache.Profiles(ctx)
	if err != nil {
		return types.ModelSelection{}, err
	}

	if props.Reasoning {
		profiles = filter(profiles, func(p types.ModelProfile) bool {
			return p.Characteristics.IsReasoning
		})
	}

	category := e.classifier.Classify(ctx, prompt)

	if props.TokenLimit > 0 {
		needed := estimatePromptTokens(prompt) + props.TokenLimit
		profiles = filter(profiles, func(p types.ModelProfile) bool {
			return p.Descriptor.ContextLength >= needed
		})
	}

	candidates := filter(profiles, func(p types.ModelProfile) bool {
		return p.Scores.ForCategory(category.Type) >= minCategoryScore
	})
	if len(candidates) == 0 {
		noCandidatesTotal.Inc()
		return types.ModelSelection{}, ErrNoSuitableModels(category.Type)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Scores.ForCategory(category.Type) > candidates[j].Scores.ForCategory(category.Type)
	})

	selection, fellBack := e.decide(ctx, prompt, category, props, candidates)

	e.recommendations.Add(1)
	recommendationsTotal.WithLabelValues(string(category.Type)).Inc()
	if e.analytics != nil {
		e.analytics.Emit(analytics.Event{
			Category:   category.Type,
			Model:      selection.Model,
			Fallback:   fellBack,
			Confidence: selection.Confidence,
			DurationMS: time.Since(start).Milliseconds(),
		})
	}
	return selection, nil
}

// decide delegates the final pick to the collaborator and validates its
// answer; any failure selects the top-ranked candidate instead.
func (e *Engine) decide(ctx context.Context, prompt string, category types.PromptCategory, props types.PromptProperties, candidates []types.ModelProfile) (types.ModelSelection, bool) {
	ids := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		ids[c.Descriptor.ID] = true
	}

	brief := buildDecisionBrief(prompt, category, props, candidates)
	raw, err := e.decider.Decide(ctx, brief)
	if err == nil {
		ans, perr := parseDecision(raw, ids)
		if perr == nil {
			return types.ModelSelection{
				Model:      ans.Model,
				Reason:     ans.Reason,
				Confidence: ans.Confidence,
				Category:   category,
			}, false
		}
		err = perr
	}

	e.fallbacks.Add(1)
	fallbacksTotal.Inc()
	top := candidates[0]
	e.log.Warn().Err(err).Str("fallback", top.Descriptor.ID).Msg("decision collaborator failed, using top candidate")
	return types.ModelSelection{
		Model:      top.Descriptor.ID,
		Reason:     "decision collaborator unavailable; fell back to the highest " + string(category.Type) + " score",
		Confidence: fallbackConfidence,
		Category:   category,
	}, true
}

func filter(in []types.ModelProfile, keep func(types.ModelProfile) bool) []types.ModelProfile {
	out := in[:0:0]
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
