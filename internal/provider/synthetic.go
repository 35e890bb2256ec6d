package provider

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"stockcast/internal/domain"
)

const syntheticBars = 100

// SyntheticProvider generates a seeded geometric random walk per symbol.
// It backs the demo endpoint and offline training, so no external API is
// touched; the same symbol always yields the same series.
type SyntheticProvider struct{}

func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{}
}

func (p *SyntheticProvider) FetchDaily(_ context.Context, symbol string) (domain.PriceSeries, error) {
	return GenerateSeries(symbol, syntheticBars), nil
}

// GenerateSeries builds n bars of plausible daily OHLCV data seeded by the
// symbol hash.
func GenerateSeries(symbol string, n int) domain.PriceSeries {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64() % 10000)))

	base := 50 + rng.Float64()*450
	series := make(domain.PriceSeries, 0, n)
	logPrice := math.Log(base)
	for i := 0; i < n; i++ {
		logPrice += rng.NormFloat64()*0.02 + 0.001
		price := math.Exp(logPrice)
		series = append(series, domain.PriceBar{
			Open:   price * (0.98 + rng.Float64()*0.04),
			High:   price * (1.00 + rng.Float64()*0.05),
			Low:    price * (0.95 + rng.Float64()*0.05),
			Close:  price,
			Volume: 1_000_000 + rng.Float64()*9_000_000,
		})
	}
	return series
}
