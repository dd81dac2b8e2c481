package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"selectd/pkg/types"
)

// Fetcher supplies raw model descriptors from a source feed.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]types.ModelDescriptor, error)
}

// Client fetches the model listing from an OpenRouter-style HTTP feed.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a feed client. baseURL is the API root without a
// trailing slash (e.g. https://openrouter.ai/api/v1).
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// feedListing mirrors the feed's JSON envelope.
type feedListing struct {
	Data []types.ModelDescriptor `json:"data"`
}

// FetchCatalog performs GET {base}/models with the Bearer credential.
// Any non-2xx response is a hard failure.
func (c *Client) FetchCatalog(ctx context.Context) ([]types.ModelDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, ErrFetch(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ErrFetch(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrFetchStatus("models listing", resp.StatusCode)
	}
	var listing feedListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, ErrFetch(fmt.Sprintf("decode listing: %v", err))
	}
	return listing.Data, nil
}
