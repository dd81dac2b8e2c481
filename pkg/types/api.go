package types

// RecommendRequest is the payload for POST /recommend.
type RecommendRequest struct {
	// Required prompt text to route.
	// example: Write a function to validate email addresses with regex
	Prompt string `json:"prompt" example:"Write a function to validate email addresses with regex"`
	// Soft requirements for the selection. Zero values are accepted.
	Properties PromptProperties `json:"properties"`
}

// RecommendResponse wraps the selection returned by POST /recommend.
type RecommendResponse struct {
	Selection ModelSelection `json:"selection"`
}

// ProfilesResponse wraps the profile snapshot returned by GET /profiles.
type ProfilesResponse struct {
	// Current catalog snapshot.
	Profiles []ModelProfile `json:"profiles"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: prompt is required
	Error string `json:"error" example:"prompt is required"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Whether the catalog cache currently holds a snapshot.
	// example: true
	CatalogReady bool `json:"catalog_ready"`
	// Number of profiles in the current snapshot.
	// example: 312
	ProfileCount int `json:"profile_count"`
	// Last successful catalog refresh in unix seconds (0 = never).
	// example: 1700000000
	LastRefreshedUnix int64 `json:"last_refreshed_unix"`
	// Seconds until the snapshot expires (negative = already stale).
	// example: 604123
	TTLRemainingSeconds int64 `json:"ttl_remaining_seconds"`
	// Total recommendations served since start.
	// example: 42
	RecommendationsTotal uint64 `json:"recommendations_total"`
	// Recommendations resolved by the deterministic fallback.
	// example: 3
	FallbacksTotal uint64 `json:"fallbacks_total"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix"`
}
