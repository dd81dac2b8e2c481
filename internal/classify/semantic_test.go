package classify

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"selectd/pkg/types"
)

// basisEmbedder embeds every curated example sentence as the unit basis
// vector of its category, so each centroid equals that basis vector.
// Other texts resolve through vecs, defaulting to def.
type basisEmbedder struct {
	vecs  map[string][]float32
	def   []float32
	errOn string
	calls atomic.Int64
}

func categoryIndex(cat types.Category) int {
	for i, c := range types.Categories() {
		if c == cat {
			return i
		}
	}
	return -1
}

func basisVec(i int) []float32 {
	v := make([]float32, len(types.Categories()))
	v[i] = 1
	return v
}

func newBasisEmbedder() *basisEmbedder {
	e := &basisEmbedder{vecs: make(map[string][]float32), def: basisVec(0)}
	for cat, examples := range categoryExamples {
		for _, text := range examples {
			e.vecs[text] = basisVec(categoryIndex(cat))
		}
	}
	return e
}

func (e *basisEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	if text == e.errOn {
		return nil, errors.New("embed failed")
	}
	if v, ok := e.vecs[text]; ok {
		return v, nil
	}
	return e.def, nil
}

func TestSemanticClassifyPicksClosestCentroid(t *testing.T) {
	e := newBasisEmbedder()
	e.vecs["tell me a story"] = basisVec(categoryIndex(types.CategoryCreative))
	c := NewSemanticClassifier(e)

	got, err := c.Classify(context.Background(), "tell me a story")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Type != types.CategoryCreative {
		t.Fatalf("type=%s, want creative", got.Type)
	}
	// Perfect alignment with one centroid and orthogonal to the rest:
	// confidence = clamp(0.1, 0.95, 0.5 + 0.4*(0.7*1 + 0.3*1)) = 0.9.
	if math.Abs(got.Confidence-0.9) > 1e-9 {
		t.Fatalf("confidence=%v, want 0.9", got.Confidence)
	}
}

func TestSemanticLowSimilarityFallsBackToGeneral(t *testing.T) {
	e := newBasisEmbedder()
	// Orthogonal to every centroid.
	far := make([]float32, len(types.Categories())+1)
	far[len(far)-1] = 1
	e.vecs["completely unrelated"] = far
	c := NewSemanticClassifier(e)

	got, err := c.Classify(context.Background(), "completely unrelated")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Type != types.CategoryGeneral || got.Confidence != 0.4 {
		t.Fatalf("got %+v, want general/0.4", got)
	}
}

func TestSemanticInitOnce(t *testing.T) {
	e := newBasisEmbedder()
	c := NewSemanticClassifier(e)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	after := e.calls.Load()
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	if e.calls.Load() != after {
		t.Fatalf("second init recomputed centroids")
	}
}

func TestSemanticInitConcurrent(t *testing.T) {
	e := newBasisEmbedder()
	c := NewSemanticClassifier(e)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Init(context.Background()); err != nil {
				t.Errorf("init: %v", err)
			}
		}()
	}
	wg.Wait()
	// One embed call per curated example sentence, shared by all callers.
	want := int64(0)
	for _, ex := range categoryExamples {
		want += int64(len(ex))
	}
	if e.calls.Load() != want {
		t.Fatalf("embed calls=%d, want %d", e.calls.Load(), want)
	}
}

func TestSemanticInitFailureIsRetryable(t *testing.T) {
	e := newBasisEmbedder()
	e.errOn = categoryExamples[types.CategoryCoding][0]
	c := NewSemanticClassifier(e)
	if err := c.Init(context.Background()); err == nil {
		t.Fatalf("expected init failure")
	}
	e.errOn = ""
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("retry init: %v", err)
	}
}

func TestSemanticResultCache(t *testing.T) {
	e := newBasisEmbedder()
	c := NewSemanticClassifier(e)
	if _, err := c.Classify(context.Background(), "some prompt"); err != nil {
		t.Fatalf("classify: %v", err)
	}
	after := e.calls.Load()
	if _, err := c.Classify(context.Background(), "some prompt"); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if e.calls.Load() != after {
		t.Fatalf("repeat classification re-embedded the prompt")
	}
}

func TestSemanticEmbedErrorPropagates(t *testing.T) {
	e := newBasisEmbedder()
	e.errOn = "broken prompt"
	c := NewSemanticClassifier(e)
	if _, err := c.Classify(context.Background(), "broken prompt"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		a, b []float32
		want float64
	}{
		{[]float32{1, 0}, []float32{1, 0}, 1},
		{[]float32{1, 0}, []float32{0, 1}, 0},
		{[]float32{1, 0}, []float32{-1, 0}, -1},
		{[]float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, c := range cases {
		if got := cosineSimilarity(c.a, c.b); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("cos(%v,%v)=%v, want %v", c.a, c.b, got, c.want)
		}
	}
}
