package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"selectd/internal/catalog"
	"selectd/internal/engine"
	"selectd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Recommend(ctx context.Context, prompt string, props types.PromptProperties) (types.ModelSelection, error)
	ListProfiles(ctx context.Context) ([]types.ModelProfile, error)
	ClearCache()
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// Recommend godoc
	// @Summary Recommend a model for a prompt
	// @Accept json
	// @Produce json
	// @Param request body types.RecommendRequest true "Prompt and requirements"
	// @Success 200 {object} types.RecommendResponse
	// @Failure 400 {object} types.ErrorResponse
	// @Failure 404 {object} types.ErrorResponse
	// @Failure 502 {object} types.ErrorResponse
	// @Failure 503 {object} types.ErrorResponse
	// @Router /recommend [post]
	r.Post("/recommend", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.RecommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeJSONError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		if lvl >= LevelInfo {
			if zlog != nil {
				z := zlog.Info().Str("path", r.URL.Path)
				if rid := middleware.GetReqID(r.Context()); rid != "" {
					z = z.Str("request_id", rid)
				}
				z.Msg("recommend start")
			} else {
				log.Printf("recommend start path=%s", r.URL.Path)
			}
		}

		// Join server base context with request context so shutdown
		// cancels in-flight work too.
		joinedCtx, cancel := joinContexts(daemonCtx, r.Context())
		defer cancel()

		sel, err := svc.Recommend(joinedCtx, req.Prompt, req.Properties)
		if err != nil {
			// Client disconnect or shutdown: nothing useful to write.
			if r.Context().Err() != nil || daemonCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			writeJSONError(w, status, err.Error())
			if lvl >= LevelInfo {
				logRequestEnd(r, "recommend end", status, time.Since(start), err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.RecommendResponse{Selection: sel}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		if lvl >= LevelInfo {
			logRequestEnd(r, "recommend end", http.StatusOK, time.Since(start), nil)
		}
	})

	// Profiles godoc
	// @Summary List the profiled model catalog
	// @Produce json
	// @Success 200 {object} types.ProfilesResponse
	// @Failure 502 {object} types.ErrorResponse
	// @Router /profiles [get]
	r.Get("/profiles", func(w http.ResponseWriter, r *http.Request) {
		joinedCtx, cancel := joinContexts(daemonCtx, r.Context())
		defer cancel()
		profiles, err := svc.ListProfiles(joinedCtx)
		if err != nil {
			writeJSONError(w, statusForError(err), err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.ProfilesResponse{Profiles: profiles}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Delete("/cache", func(w http.ResponseWriter, r *http.Request) {
		svc.ClearCache()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// statusForError maps well-known engine and catalog errors to HTTP status
// codes. Unknown errors map to 500.
func statusForError(err error) int {
	switch {
	case engine.IsUninitialized(err):
		return http.StatusServiceUnavailable
	case engine.IsNoSuitableModels(err):
		return http.StatusNotFound
	case catalog.IsFetchError(err):
		return http.StatusBadGateway
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func logRequestEnd(r *http.Request, msg string, status int, dur time.Duration, err error) {
	if zlog != nil {
		z := zlog.Info().Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg(msg)
		return
	}
	if err != nil {
		log.Printf("%s status=%d dur=%s err=%v", msg, status, dur, err)
		return
	}
	log.Printf("%s status=%d dur=%s", msg, status, dur)
}
