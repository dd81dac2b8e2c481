package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"selectd/internal/analytics"
	"selectd/internal/catalog"
	"selectd/internal/classify"
	"selectd/internal/config"
	"selectd/internal/engine"
	"selectd/internal/httpapi"
	"selectd/internal/profile"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("SELECTD_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	configPath := flag.String("config", os.Getenv("SELECTD_CONFIG"), "Optional config file (.yaml/.json/.toml)")
	feedURL := flag.String("feed-url", envOr("SELECTD_FEED_URL", "https://openrouter.ai/api/v1"), "Model catalog feed base URL")
	decisionModel := flag.String("decision-model", envOr("SELECTD_DECISION_MODEL", "openai/gpt-4o-mini"), "Model id used for the final selection call")
	embedModel := flag.String("embed-model", envOr("SELECTD_EMBED_MODEL", "text-embedding-3-small"), "Embedding model id for semantic classification")
	cacheTTL := flag.Duration("cache-ttl", 0, "Catalog cache TTL (0 uses the built-in default)")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "selectd").Logger()

	// Precedence: defaults < config file < environment < explicit flags.
	cfg := config.Config{
		Addr:          *addr,
		FeedURL:       *feedURL,
		DecisionModel: *decisionModel,
		EmbedModel:    *embedModel,
	}
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
		cfg = mergeConfig(cfg, fileCfg)
	}
	cfg, err := config.ApplyEnv(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("apply environment")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "feed-url":
			cfg.FeedURL = *feedURL
		case "decision-model":
			cfg.DecisionModel = *decisionModel
		case "embed-model":
			cfg.EmbedModel = *embedModel
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.DecisionURL == "" {
		cfg.DecisionURL = cfg.FeedURL
	}
	if cfg.DecisionAPIKey == "" {
		cfg.DecisionAPIKey = cfg.FeedAPIKey
	}
	if cfg.EmbedURL == "" {
		cfg.EmbedURL = cfg.FeedURL
	}
	if cfg.EmbedAPIKey == "" {
		cfg.EmbedAPIKey = cfg.FeedAPIKey
	}

	ttl := catalog.DefaultTTL
	if *cacheTTL > 0 {
		ttl = *cacheTTL
	} else if cfg.CacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}

	fetcher := catalog.NewClient(cfg.FeedURL, cfg.FeedAPIKey)
	cache := catalog.NewCache(fetcher, profile.New(), ttl, logger)
	defer cache.Close()

	classifier := classify.NewHybridClassifier(
		classify.NewKeywordClassifier(),
		classify.NewSemanticClassifier(classify.NewEmbedClient(cfg.EmbedURL, cfg.EmbedAPIKey, cfg.EmbedModel)),
		logger,
	)
	decider := engine.NewChatDecider(cfg.DecisionURL, cfg.DecisionAPIKey, cfg.DecisionModel)
	publisher := analytics.NewPublisher(analytics.LogSink{Log: logger}, cfg.AnalyticsBuffer, logger)

	eng := engine.New(engine.Config{
		Cache:      cache,
		Classifier: classifier,
		Decider:    decider,
		Analytics:  publisher,
		Logger:     logger,
	})

	initCtx, cancelInit := context.WithTimeout(context.Background(), time.Minute)
	if err := eng.Initialize(initCtx); err != nil {
		cancelInit()
		logger.Fatal().Err(err).Msg("initialize engine")
	}
	cancelInit()

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetLogger(logger)

	mux := httpapi.NewMux(eng)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("feed", cfg.FeedURL).Msg("selectd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	if err := publisher.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("drain analytics")
	}
}

// mergeConfig overlays non-zero fields of over onto base.
func mergeConfig(base, over config.Config) config.Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.FeedURL != "" {
		base.FeedURL = over.FeedURL
	}
	if over.FeedAPIKey != "" {
		base.FeedAPIKey = over.FeedAPIKey
	}
	if over.DecisionURL != "" {
		base.DecisionURL = over.DecisionURL
	}
	if over.DecisionAPIKey != "" {
		base.DecisionAPIKey = over.DecisionAPIKey
	}
	if over.DecisionModel != "" {
		base.DecisionModel = over.DecisionModel
	}
	if over.EmbedURL != "" {
		base.EmbedURL = over.EmbedURL
	}
	if over.EmbedAPIKey != "" {
		base.EmbedAPIKey = over.EmbedAPIKey
	}
	if over.EmbedModel != "" {
		base.EmbedModel = over.EmbedModel
	}
	if over.CacheTTLSeconds != 0 {
		base.CacheTTLSeconds = over.CacheTTLSeconds
	}
	if over.AnalyticsBuffer != 0 {
		base.AnalyticsBuffer = over.AnalyticsBuffer
	}
	return base
}
