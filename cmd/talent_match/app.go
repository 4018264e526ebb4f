package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marcus/talent-match/internal/config"
	"github.com/marcus/talent-match/internal/extraction"
	"github.com/marcus/talent-match/internal/geo"
	"github.com/marcus/talent-match/internal/logger"
	"github.com/marcus/talent-match/internal/matching"
	"github.com/marcus/talent-match/internal/nlp"
	"github.com/marcus/talent-match/internal/scoring"
	"github.com/marcus/talent-match/internal/store"
	"github.com/marcus/talent-match/internal/taxonomy"
)

const defaultGeocodeTimeout = 10 * time.Second

// loadAppConfig resolves the effective configuration: config file first
// when given, then environment variables for whatever it left unset.
func loadAppConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	ambient := &config.Config{}
	if err := ambient.FromEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(*ambient)
	cfg = &merged

	if verbose {
		cfg.Verbose = true
	}
	if jsonLogs {
		cfg.JSONLogs = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}

// buildStore connects the configured record store backend.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return store.ConnectPostgres(ctx, cfg.DatabaseURL)
	case config.BackendSheets:
		return store.NewSheetsStore(ctx, cfg.SpreadsheetID, cfg.SheetsCredential)
	default:
		return nil, fmt.Errorf("store backend is not configured: set store_backend to %q or %q", config.BackendSheets, config.BackendPostgres)
	}
}

// buildEngine wires the ranking engine from configuration. The Gemini
// provider is optional: without an API key the engine still ranks on
// skills, experience, and location, with the semantic component at zero.
// The returned cleanup releases provider resources.
func buildEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*matching.Engine, func(), error) {
	var gemini *nlp.Gemini
	if cfg.GeminiAPIKey != "" {
		geminiConfig := nlp.DefaultGeminiConfig()
		if cfg.RecognizerModel != "" {
			geminiConfig.RecognizerModel = cfg.RecognizerModel
		}
		if cfg.EmbeddingModel != "" {
			geminiConfig.EmbeddingModel = cfg.EmbeddingModel
		}
		var err error
		gemini, err = nlp.NewGemini(ctx, cfg.GeminiAPIKey, geminiConfig, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini provider: %w", err)
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, semantic scoring and entity recognition disabled")
	}

	var geocodeOpts []geo.NominatimOption
	if cfg.NominatimURL != "" {
		geocodeOpts = append(geocodeOpts, geo.WithBaseURL(cfg.NominatimURL))
	}
	if cfg.NominatimUserAgent != "" {
		geocodeOpts = append(geocodeOpts, geo.WithUserAgent(cfg.NominatimUserAgent))
	}
	geocodeTimeout := defaultGeocodeTimeout
	if cfg.GeocodeTimeoutSec > 0 {
		geocodeTimeout = time.Duration(cfg.GeocodeTimeoutSec) * time.Second
	}
	geocodeOpts = append(geocodeOpts, geo.WithTimeout(geocodeTimeout))
	geocoder := geo.NewCached(geo.NewNominatim(log, geocodeOpts...))

	var recognizer nlp.EntityRecognizer
	var embedder nlp.Embedder
	if gemini != nil {
		recognizer = gemini
		embedder = gemini
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		loaded, err := taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load taxonomy: %w", err)
		}
		tax = loaded
	}

	extractor := extraction.NewExtractor(tax, recognizer, log)
	locations := scoring.NewLocationScorer(geocoder, geocodeTimeout, log)

	var opts []matching.Option
	if cfg.Parallelism > 0 {
		opts = append(opts, matching.WithParallelism(cfg.Parallelism))
	}
	engine := matching.NewEngine(extractor, embedder, locations, log, opts...)

	cleanup := func() {
		if gemini != nil {
			_ = gemini.Close()
		}
	}
	return engine, cleanup, nil
}
