package sentiment

import (
	"context"
	"hash/fnv"
	"math/rand"
)

// Seeded is the default sentiment source: a per-symbol deterministic
// placeholder standing in for a real news-sentiment provider. The score is
// drawn uniformly from [-0.5, 0.5] with the symbol hash as seed, so
// repeated lookups for the same symbol always agree.
type Seeded struct{}

func NewSeeded() *Seeded { return &Seeded{} }

func (s *Seeded) Score(_ context.Context, symbol string) float64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64() % 100)))
	return rng.Float64() - 0.5
}
