package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"stockcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// DataProvider supplies daily OHLCV history for a symbol.
type DataProvider interface {
	FetchDaily(ctx context.Context, symbol string) (domain.PriceSeries, error)
}

// PredictionStore caches composed results. A (nil, nil) return from
// GetPrediction means miss.
type PredictionStore interface {
	GetPrediction(ctx context.Context, symbol string) (*domain.PredictionResult, error)
	SetPrediction(ctx context.Context, symbol string, result domain.PredictionResult, ttl time.Duration) error
	Size(ctx context.Context) int
}

// FeatureBuilder derives the classifier input vector from a price series.
type FeatureBuilder interface {
	Build(ctx context.Context, symbol string, series domain.PriceSeries) (domain.FeatureVector, error)
}

// PricePredictor forecasts the next closing price.
type PricePredictor interface {
	Loaded() bool
	PredictNext(series domain.PriceSeries) (float64, error)
}

// SignalPredictor maps a feature vector to a trading signal and confidence.
type SignalPredictor interface {
	Loaded() bool
	Predict(fv domain.FeatureVector) (string, float64, error)
}

// MetricsRecorder receives pipeline counters; recording never blocks the
// request path.
type MetricsRecorder interface {
	RecordPrediction(signal string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordError(kind string)
	RecordLatency(seconds float64)
}

type Config struct {
	ModelVersion string
	CacheEnabled bool
	CacheTTL     time.Duration
	MaxBatchSize int
}

// Deps wires the pipeline stages into the orchestrator.
type Deps struct {
	Tracer   trace.Tracer
	Data     DataProvider
	DemoData DataProvider
	Store    PredictionStore
	Features FeatureBuilder
	Price    PricePredictor
	Signal   SignalPredictor
	Metrics  MetricsRecorder
}

// PredictionService runs the full pipeline for one symbol: cache lookup,
// history fetch, feature derivation, both model inferences, and the
// composed result write-back.
type PredictionService struct {
	deps Deps
	cfg  Config
	now  func() time.Time
}

func NewPredictionService(cfg Config, deps Deps) *PredictionService {
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	return &PredictionService{
		deps: deps,
		cfg:  cfg,
		now:  time.Now,
	}
}

// Predict runs the pipeline for a single raw ticker, consulting the cache
// when enabled.
func (s *PredictionService) Predict(ctx context.Context, rawSymbol string) (*domain.PredictionResult, error) {
	symbol, err := domain.ValidateSymbol(rawSymbol)
	if err != nil {
		return nil, s.fail(rawSymbol, err)
	}
	return s.run(ctx, symbol, s.deps.Data, s.cfg.CacheEnabled, "")
}

// PredictDemo runs the pipeline against the seeded synthetic provider.
// Demo results carry a version suffix and never touch the cache.
func (s *PredictionService) PredictDemo(ctx context.Context, rawSymbol string) (*domain.PredictionResult, error) {
	symbol, err := domain.ValidateSymbol(rawSymbol)
	if err != nil {
		return nil, s.fail(rawSymbol, err)
	}
	return s.run(ctx, symbol, s.deps.DemoData, false, "-DEMO")
}

// PredictBatch runs the pipeline sequentially for each ticker. A failed
// slot yields an ERROR sentinel instead of failing the batch, so the
// response preserves input order and length.
func (s *PredictionService) PredictBatch(ctx context.Context, rawSymbols []string) (*domain.BatchResult, error) {
	symbols, err := domain.NormalizeBatch(rawSymbols, s.cfg.MaxBatchSize)
	if err != nil {
		return nil, s.fail("batch", err)
	}

	ctx, span := s.deps.Tracer.Start(ctx, "prediction.batch")
	defer span.End()

	batch := &domain.BatchResult{
		Predictions: make([]domain.PredictionResult, 0, len(symbols)),
		Total:       len(symbols),
	}
	for _, symbol := range symbols {
		result, err := s.Predict(ctx, symbol)
		if err != nil {
			batch.Failed++
			batch.Predictions = append(batch.Predictions, domain.PredictionResult{
				Symbol:       symbol,
				Signal:       domain.SignalError,
				Confidence:   0,
				Timestamp:    s.now().UTC(),
				ModelVersion: s.cfg.ModelVersion,
			})
			continue
		}
		batch.Successful++
		batch.Predictions = append(batch.Predictions, *result)
	}
	return batch, nil
}

// ModelsLoaded reports whether both model handles can serve inference.
func (s *PredictionService) ModelsLoaded() bool {
	return s.deps.Price != nil && s.deps.Price.Loaded() &&
		s.deps.Signal != nil && s.deps.Signal.Loaded()
}

// CacheSize reports the number of cached predictions.
func (s *PredictionService) CacheSize(ctx context.Context) int {
	if s.deps.Store == nil {
		return 0
	}
	return s.deps.Store.Size(ctx)
}

func (s *PredictionService) run(ctx context.Context, symbol string, data DataProvider, useCache bool, versionSuffix string) (*domain.PredictionResult, error) {
	ctx, span := s.deps.Tracer.Start(ctx, "prediction.run")
	defer span.End()
	start := s.now()

	if useCache && s.deps.Store != nil {
		cached, err := s.deps.Store.GetPrediction(ctx, symbol)
		if err != nil {
			// A broken cache degrades to a full pipeline run.
			log.Printf("prediction: cache read for %s: %v", symbol, err)
		}
		if cached != nil {
			s.deps.Metrics.RecordCacheHit()
			hit := *cached
			hit.Cached = true
			return &hit, nil
		}
		s.deps.Metrics.RecordCacheMiss()
	}

	if !s.ModelsLoaded() {
		return nil, s.fail(symbol, fmt.Errorf("%w: models not loaded", domain.ErrModelUnavailable))
	}

	series, err := data.FetchDaily(ctx, symbol)
	if err != nil {
		return nil, s.fail(symbol, err)
	}

	fv, err := s.deps.Features.Build(ctx, symbol, series)
	if err != nil {
		return nil, s.fail(symbol, err)
	}

	predicted, err := s.deps.Price.PredictNext(series)
	if err != nil {
		return nil, s.fail(symbol, err)
	}

	sig, confidence, err := s.deps.Signal.Predict(fv)
	if err != nil {
		return nil, s.fail(symbol, err)
	}

	result := domain.PredictionResult{
		Symbol:         symbol,
		PredictedPrice: predicted,
		Signal:         sig,
		Confidence:     confidence,
		Timestamp:      s.now().UTC(),
		ModelVersion:   s.cfg.ModelVersion + versionSuffix,
		Cached:         false,
	}

	if useCache && s.deps.Store != nil {
		if err := s.deps.Store.SetPrediction(ctx, symbol, result, s.cfg.CacheTTL); err != nil {
			log.Printf("prediction: cache write for %s: %v", symbol, err)
		}
	}

	s.deps.Metrics.RecordPrediction(sig)
	s.deps.Metrics.RecordLatency(s.now().Sub(start).Seconds())
	return &result, nil
}

// fail classifies, logs, and counts a pipeline failure before returning it.
func (s *PredictionService) fail(symbol string, err error) error {
	kind := domain.ErrorKind(err)
	s.deps.Metrics.RecordError(kind)
	log.Printf("prediction: %s failed (%s): %v", symbol, kind, err)
	return err
}

type nopMetrics struct{}

func (nopMetrics) RecordPrediction(string) {}
func (nopMetrics) RecordCacheHit()         {}
func (nopMetrics) RecordCacheMiss()        {}
func (nopMetrics) RecordError(string)      {}
func (nopMetrics) RecordLatency(float64)   {}
