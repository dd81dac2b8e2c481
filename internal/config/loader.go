package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`

	// Catalog feed (OpenRouter-style GET {url}/models).
	FeedURL    string `json:"feed_url" yaml:"feed_url" toml:"feed_url"`
	FeedAPIKey string `json:"feed_api_key" yaml:"feed_api_key" toml:"feed_api_key"`

	// Decision collaborator (OpenAI-style chat completions).
	DecisionURL    string `json:"decision_url" yaml:"decision_url" toml:"decision_url"`
	DecisionAPIKey string `json:"decision_api_key" yaml:"decision_api_key" toml:"decision_api_key"`
	DecisionModel  string `json:"decision_model" yaml:"decision_model" toml:"decision_model"`

	// Embedding collaborator (OpenAI-style embeddings).
	EmbedURL    string `json:"embed_url" yaml:"embed_url" toml:"embed_url"`
	EmbedAPIKey string `json:"embed_api_key" yaml:"embed_api_key" toml:"embed_api_key"`
	EmbedModel  string `json:"embed_model" yaml:"embed_model" toml:"embed_model"`

	CacheTTLSeconds int `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds" toml:"cache_ttl_seconds"`
	AnalyticsBuffer int `json:"analytics_buffer" yaml:"analytics_buffer" toml:"analytics_buffer"`
}

// missingCredentialError names a credential field required at startup.
type missingCredentialError struct{ field string }

func (e missingCredentialError) Error() string { return "missing credential: " + e.field }

// ErrMissingCredential constructs a missingCredentialError.
func ErrMissingCredential(field string) error { return missingCredentialError{field: field} }

// IsMissingCredential reports whether err indicates a missing credential.
func IsMissingCredential(err error) bool {
	_, ok := err.(missingCredentialError)
	return ok
}

// Validate checks the credentials the daemon cannot start without. The
// decision and embedding keys fall back to the feed key when unset, so
// only the feed key is mandatory.
func (c Config) Validate() error {
	if c.FeedAPIKey == "" {
		return ErrMissingCredential("feed_api_key")
	}
	return nil
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays SELECTD_* environment variables onto cfg. A set
// variable always wins over the file value; unset variables leave cfg
// untouched. Malformed integers are reported, not silently dropped.
func ApplyEnv(cfg Config) (Config, error) {
	envStr := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	envStr("SELECTD_ADDR", &cfg.Addr)
	envStr("SELECTD_FEED_URL", &cfg.FeedURL)
	envStr("SELECTD_FEED_API_KEY", &cfg.FeedAPIKey)
	envStr("SELECTD_DECISION_URL", &cfg.DecisionURL)
	envStr("SELECTD_DECISION_API_KEY", &cfg.DecisionAPIKey)
	envStr("SELECTD_DECISION_MODEL", &cfg.DecisionModel)
	envStr("SELECTD_EMBED_URL", &cfg.EmbedURL)
	envStr("SELECTD_EMBED_API_KEY", &cfg.EmbedAPIKey)
	envStr("SELECTD_EMBED_MODEL", &cfg.EmbedModel)

	for _, e := range []struct {
		key string
		dst *int
	}{
		{"SELECTD_CACHE_TTL_SECONDS", &cfg.CacheTTLSeconds},
		{"SELECTD_ANALYTICS_BUFFER", &cfg.AnalyticsBuffer},
	} {
		v, ok := os.LookupEnv(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	return cfg, nil
}
