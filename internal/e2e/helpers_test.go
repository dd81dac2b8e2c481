package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"selectd/internal/analytics"
	"selectd/internal/catalog"
	"selectd/internal/classify"
	"selectd/internal/engine"
	"selectd/internal/httpapi"
	"selectd/internal/profile"
	"selectd/pkg/types"
)

// upstream fakes the three external collaborators on one httptest server:
// the catalog feed, the embeddings endpoint, and the chat-completions
// decision endpoint.
type upstream struct {
	srv        *httptest.Server
	descs      []types.ModelDescriptor
	decision   string
	fetchCalls atomic.Int64
}

func newUpstream(t *testing.T, descs []types.ModelDescriptor, decision string) *upstream {
	t.Helper()
	u := &upstream{descs: descs, decision: decision}
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		u.fetchCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"data": u.descs})
	})
	mux.HandleFunc("/embeddings", func(w http.ResponseWriter, r *http.Request) {
		// Constant vector: semantic classification degrades gracefully and
		// the hybrid leans on the keyword side.
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1, 0, 0}}},
		})
	})
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": u.decision}}},
		})
	})
	u.srv = httptest.NewServer(mux)
	t.Cleanup(u.srv.Close)
	return u
}

// newStack wires the full daemon in-process against the fake upstream and
// returns a test server for its HTTP API.
func newStack(t *testing.T, u *upstream, ttl time.Duration) (*httptest.Server, *engine.Engine) {
	t.Helper()
	logger := zerolog.Nop()

	cache := catalog.NewCache(catalog.NewClient(u.srv.URL, "test-key"), profile.New(), ttl, logger)
	t.Cleanup(cache.Close)

	classifier := classify.NewHybridClassifier(
		classify.NewKeywordClassifier(),
		classify.NewSemanticClassifier(classify.NewEmbedClient(u.srv.URL, "test-key", "text-embedding-3-small")),
		logger,
	)
	decider := engine.NewChatDecider(u.srv.URL, "test-key", "openai/gpt-4o-mini")
	publisher := analytics.NewPublisher(analytics.LogSink{Log: logger}, 16, logger)

	eng := engine.New(engine.Config{
		Cache:      cache,
		Classifier: classifier,
		Decider:    decider,
		Analytics:  publisher,
		Logger:     logger,
	})
	srv := httptest.NewServer(httpapi.NewMux(eng))
	t.Cleanup(srv.Close)
	return srv, eng
}

func catalogFixture() []types.ModelDescriptor {
	return []types.ModelDescriptor{
		{ID: "openai/o1", Name: "o1", ContextLength: 200_000, Pricing: types.Pricing{Prompt: "0.000015", Completion: "0.00006"}},
		{ID: "anthropic/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet", ContextLength: 200_000, Pricing: types.Pricing{Prompt: "0.000003", Completion: "0.000015"}},
		{ID: "anthropic/claude-3-haiku", Name: "Claude 3 Haiku", ContextLength: 200_000, Pricing: types.Pricing{Prompt: "0.00000025", Completion: "0.00000125"}},
		{ID: "openai/gpt-3.5-turbo", Name: "GPT-3.5 Turbo", ContextLength: 16_385, Pricing: types.Pricing{Prompt: "0.0000005", Completion: "0.0000015"}},
	}
}
