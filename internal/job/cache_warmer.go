package job

import (
	"context"
	"log"
	"time"

	"stockcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Warmable is the slice of the prediction service the warmer drives.
type Warmable interface {
	Predict(ctx context.Context, symbol string) (*domain.PredictionResult, error)
}

// CacheWarmer periodically predicts a fixed watchlist so those symbols are
// always served from cache. One symbol per tick, round-robin; the
// provider's rate limiter throttles the upstream calls.
type CacheWarmer struct {
	tracer      trace.Tracer
	predictions Warmable
	symbols     []string
	interval    time.Duration
}

func NewCacheWarmer(tracer trace.Tracer, predictions Warmable, symbols []string, intervalSecs int) *CacheWarmer {
	return &CacheWarmer{
		tracer:      tracer,
		predictions: predictions,
		symbols:     symbols,
		interval:    time.Duration(intervalSecs) * time.Second,
	}
}

// Start blocks until ctx is cancelled. No-op when the watchlist is empty.
func (w *CacheWarmer) Start(ctx context.Context) {
	if len(w.symbols) == 0 {
		return
	}
	log.Printf("cache warmer starting for %d symbols", len(w.symbols))

	index := 0
	w.warmNext(ctx, &index)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("cache warmer stopped")
			return
		case <-ticker.C:
			w.warmNext(ctx, &index)
		}
	}
}

func (w *CacheWarmer) warmNext(ctx context.Context, index *int) {
	ctx, span := w.tracer.Start(ctx, "job.warm-prediction")
	defer span.End()

	symbol := w.symbols[*index%len(w.symbols)]
	*index++

	if _, err := w.predictions.Predict(ctx, symbol); err != nil {
		log.Printf("cache warm for %s: %v", symbol, err)
	}
}
