package cache

import (
	"context"
	"time"

	"stockcast/internal/domain"
)

// MemoryStore adapts the TTL cache to the prediction-store contract the
// orchestrator consumes: a nil result with a nil error means miss.
type MemoryStore struct {
	inner *Memory[domain.PredictionResult]
}

// NewMemoryStore wraps a TTL cache as the default prediction store.
func NewMemoryStore(inner *Memory[domain.PredictionResult]) *MemoryStore {
	if inner == nil {
		inner = NewMemory[domain.PredictionResult](nil)
	}
	return &MemoryStore{inner: inner}
}

func (s *MemoryStore) GetPrediction(_ context.Context, symbol string) (*domain.PredictionResult, error) {
	result, ok := s.inner.Get(predictionKey(symbol))
	if !ok {
		return nil, nil
	}
	return &result, nil
}

func (s *MemoryStore) SetPrediction(_ context.Context, symbol string, result domain.PredictionResult, ttl time.Duration) error {
	s.inner.Set(predictionKey(symbol), result, ttl)
	return nil
}

func (s *MemoryStore) DeletePrediction(_ context.Context, symbol string) error {
	s.inner.Delete(predictionKey(symbol))
	return nil
}

func (s *MemoryStore) Size(_ context.Context) int {
	return s.inner.Size()
}

func predictionKey(symbol string) string {
	return "prediction:" + symbol
}
