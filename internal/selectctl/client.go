// Package selectctl implements the command line client for a running
// selectd daemon.
package selectctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"selectd/pkg/types"
)

// Client talks to the selectd HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the daemon at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Recommend asks the daemon for a model selection.
func (c *Client) Recommend(ctx context.Context, prompt string, props types.PromptProperties) (types.ModelSelection, error) {
	body, err := json.Marshal(types.RecommendRequest{Prompt: prompt, Properties: props})
	if err != nil {
		return types.ModelSelection{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return types.ModelSelection{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out types.RecommendResponse
	if err := c.do(req, &out); err != nil {
		return types.ModelSelection{}, err
	}
	return out.Selection, nil
}

// Profiles lists the daemon's profiled catalog.
func (c *Client) Profiles(ctx context.Context) ([]types.ModelProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/profiles", nil)
	if err != nil {
		return nil, err
	}
	var out types.ProfilesResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

// Status fetches daemon health and cache state.
func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return types.StatusResponse{}, err
	}
	var out types.StatusResponse
	if err := c.do(req, &out); err != nil {
		return types.StatusResponse{}, err
	}
	return out, nil
}

// ClearCache empties the daemon's catalog cache.
func (c *Client) ClearCache(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/cache", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr types.ErrorResponse
		if jerr := json.NewDecoder(resp.Body).Decode(&apiErr); jerr == nil && apiErr.Error != "" {
			return fmt.Errorf("selectd: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("selectd: status %d", resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
