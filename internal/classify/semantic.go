package classify

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"selectd/pkg/types"
)

// Embedder converts text into a fixed-length vector. Deterministic for
// identical input; may block on a remote call.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const (
	// minSimilarity below which a prompt is not safely classifiable.
	minSimilarity = 0.3
	// lowConfidenceFallback is used for such prompts.
	lowConfidenceFallback = 0.4

	// Embeddings are stabler and costlier than classifications, so they
	// are retained longer.
	embeddingTTL      = 24 * time.Hour
	classificationTTL = 30 * time.Minute
)

var errNotInitialized = errors.New("semantic classifier not initialized")

// SemanticClassifier scores prompts by cosine similarity against per-
// category centroid embeddings built from curated example sentences.
type SemanticClassifier struct {
	embedder Embedder

	initMu      sync.Mutex
	initialized bool
	centroids   map[types.Category][]float32

	embedCache  *ttlCache[[]float32]
	resultCache *ttlCache[types.PromptCategory]
}

// NewSemanticClassifier wraps an embedder. Init must succeed before
// Classify can return a real result.
func NewSemanticClassifier(e Embedder) *SemanticClassifier {
	return &SemanticClassifier{
		embedder:    e,
		embedCache:  newTTLCache[[]float32](embeddingTTL),
		resultCache: newTTLCache[types.PromptCategory](classificationTTL),
	}
}

// Init computes the category centroids. Idempotent; concurrent callers
// serialize behind one in-flight initialization, and a failed attempt can
// be retried.
func (c *SemanticClassifier) Init(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()
	if c.initialized {
		return nil
	}
	centroids := make(map[types.Category][]float32, len(categoryExamples))
	for cat, examples := range categoryExamples {
		vectors := make([][]float32, 0, len(examples))
		for _, text := range examples {
			v, err := c.embed(ctx, text)
			if err != nil {
				return err
			}
			vectors = append(vectors, v)
		}
		centroids[cat] = averageVectors(vectors)
	}
	c.centroids = centroids
	c.initialized = true
	return nil
}

// Classify embeds the prompt and picks the closest centroid. Results are
// cached by prompt content for classificationTTL.
func (c *SemanticClassifier) Classify(ctx context.Context, prompt string) (types.PromptCategory, error) {
	if err := c.Init(ctx); err != nil {
		return types.PromptCategory{}, err
	}
	if cached, ok := c.resultCache.get(prompt); ok {
		return cached, nil
	}

	vec, err := c.embed(ctx, prompt)
	if err != nil {
		return types.PromptCategory{}, err
	}

	best := types.CategoryGeneral
	bestSim := math.Inf(-1)
	secondSim := math.Inf(-1)
	for _, cat := range types.Categories() {
		centroid, ok := c.centroids[cat]
		if !ok {
			return types.PromptCategory{}, errNotInitialized
		}
		sim := cosineSimilarity(vec, centroid)
		if sim > bestSim {
			secondSim = bestSim
			bestSim = sim
			best = cat
		} else if sim > secondSim {
			secondSim = sim
		}
	}

	var result types.PromptCategory
	if bestSim < minSimilarity {
		// Dissimilar to every category: not safely classifiable.
		result = types.PromptCategory{Type: types.CategoryGeneral, Confidence: lowConfidenceFallback}
	} else {
		// uniqueness rewards a clear winner over a close runner-up.
		denom := bestSim
		if denom < 0.1 {
			denom = 0.1
		}
		uniqueness := (bestSim - secondSim) / denom
		if uniqueness < 0 {
			uniqueness = 0
		}
		confidence := clamp(0.1, 0.95, 0.5+0.4*(0.7*bestSim+0.3*uniqueness))
		result = types.PromptCategory{Type: best, Confidence: confidence}
	}
	c.resultCache.set(prompt, result)
	return result, nil
}

// embed consults the content-keyed embedding cache before calling out.
func (c *SemanticClassifier) embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.embedCache.get(text); ok {
		return v, nil
	}
	v, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, errors.New("embedder returned empty vector")
	}
	c.embedCache.set(text, v)
	return v, nil
}

// averageVectors computes the component-wise mean. Vectors shorter than
// the first are treated as zero-padded.
func averageVectors(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float32, len(vectors[0]))
	for _, v := range vectors {
		for i := 0; i < len(out) && i < len(v); i++ {
			out[i] += v[i]
		}
	}
	n := float32(len(vectors))
	for i := range out {
		out[i] /= n
	}
	return out
}

// cosineSimilarity over float32 vectors with float64 accumulation.
// Mismatched lengths compare over the shorter prefix; zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
