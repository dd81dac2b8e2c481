package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization=%q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":"openai/gpt-4o","name":"GPT-4o","context_length":128000,"pricing":{"prompt":"0.0000025","completion":"0.00001"}},
			{"id":"acme/tiny","name":"Tiny","context_length":8192,"pricing":{"prompt":"0","completion":"0"}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test")
	descs, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(descs) != 2 {
		t.Fatalf("len=%d", len(descs))
	}
	if descs[0].ID != "openai/gpt-4o" || descs[0].ContextLength != 128000 {
		t.Fatalf("unexpected first descriptor: %+v", descs[0])
	}
	if descs[0].Pricing.Prompt != "0.0000025" {
		t.Fatalf("pricing kept as decimal string, got %q", descs[0].Pricing.Prompt)
	}
}

func TestFetchCatalogNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key")
	if _, err := c.FetchCatalog(context.Background()); err == nil {
		t.Fatalf("expected error on 401")
	} else if !IsFetchError(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestFetchCatalogBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	if _, err := c.FetchCatalog(context.Background()); !IsFetchError(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestFetchCatalogUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "k")
	if _, err := c.FetchCatalog(context.Background()); !IsFetchError(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}
