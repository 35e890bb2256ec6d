package training

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"stockcast/internal/domain"
	"stockcast/internal/ml/features"
	"stockcast/internal/ml/models/seqreg"
	"stockcast/internal/ml/models/xgboost"
	"stockcast/internal/ml/registry"
	"stockcast/internal/provider"
)

// DefaultSymbols seeds the synthetic universe the offline trainer learns
// from. The tickers themselves only matter as random seeds.
var DefaultSymbols = []string{"AAPL", "MSFT", "GOOG", "AMZN", "TSLA", "NVDA", "META", "NFLX"}

type Config struct {
	Symbols        []string
	Bars           int
	SequenceLength int
	PriceOpts      seqreg.TrainOptions
	SignalOpts     xgboost.TrainOptions
}

func DefaultConfig() Config {
	return Config{
		Symbols:        DefaultSymbols,
		Bars:           300,
		SequenceLength: 30,
		PriceOpts:      seqreg.DefaultTrainOptions(),
		SignalOpts:     xgboost.DefaultTrainOptions(),
	}
}

// Result carries the freshly trained handles plus dataset stats for the
// trainer's log output.
type Result struct {
	Price          *seqreg.Model
	Signal         *xgboost.Model
	PriceWindows   int
	SignalSamples  int
	SignalAccuracy float64
}

// Service trains both model artifacts from seeded synthetic price series,
// so a fresh checkout can produce working artifacts without market access.
type Service struct {
	engine *features.Engine
	cfg    Config
}

func NewService(engine *features.Engine, cfg Config) *Service {
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = DefaultSymbols
	}
	if cfg.Bars <= 0 {
		cfg.Bars = DefaultConfig().Bars
	}
	if cfg.SequenceLength <= 0 {
		cfg.SequenceLength = DefaultConfig().SequenceLength
	}
	return &Service{engine: engine, cfg: cfg}
}

// Run generates one synthetic series per symbol and fits the price
// regressor on scaled sliding windows and the signal classifier on
// feature rows labeled by next-day direction.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	var (
		windows [][]float64
		targets []float64
		samples [][]float64
		labels  []bool
	)

	for _, symbol := range s.cfg.Symbols {
		series := provider.GenerateSeries(symbol, s.cfg.Bars)
		closes := series.Closes()

		w, t := priceWindows(closes, s.cfg.SequenceLength)
		windows = append(windows, w...)
		targets = append(targets, t...)

		rows, ups, err := s.signalRows(ctx, symbol, series)
		if err != nil {
			return nil, fmt.Errorf("build signal rows for %s: %w", symbol, err)
		}
		samples = append(samples, rows...)
		labels = append(labels, ups...)
	}

	price, err := seqreg.Train(windows, targets, s.cfg.PriceOpts)
	if err != nil {
		return nil, fmt.Errorf("train price model: %w", err)
	}
	signal, err := xgboost.Train(samples, labels, domain.FeatureNames, s.cfg.SignalOpts)
	if err != nil {
		return nil, fmt.Errorf("train signal model: %w", err)
	}

	return &Result{
		Price:          price,
		Signal:         signal,
		PriceWindows:   len(windows),
		SignalSamples:  len(samples),
		SignalAccuracy: trainAccuracy(signal, samples, labels),
	}, nil
}

// WriteArtifacts persists both models under dir using the registry's file
// names, creating dir if needed.
func WriteArtifacts(dir string, result *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	priceBlob, err := result.Price.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal price model: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, registry.PriceArtifactFile), priceBlob, 0o644); err != nil {
		return fmt.Errorf("write price artifact: %w", err)
	}

	signalBlob, err := result.Signal.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal signal model: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, registry.SignalArtifactFile), signalBlob, 0o644); err != nil {
		return fmt.Errorf("write signal artifact: %w", err)
	}
	return nil
}

// priceWindows slices closes into sequence-length windows, min-max scales
// each window, and targets the scaled next close. Flat windows are skipped
// because they carry no scale.
func priceWindows(closes []float64, seqLen int) ([][]float64, []float64) {
	var windows [][]float64
	var targets []float64
	for i := 0; i+seqLen < len(closes); i++ {
		window := closes[i : i+seqLen]
		lo, hi := window[0], window[0]
		for _, v := range window[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi == lo {
			continue
		}
		scaled := make([]float64, seqLen)
		for j, v := range window {
			scaled[j] = (v - lo) / (hi - lo)
		}
		windows = append(windows, scaled)
		targets = append(targets, (closes[i+seqLen]-lo)/(hi-lo))
	}
	return windows, targets
}

// signalRows replays the feature engine at every position with enough
// history and labels each row by whether the next close went up.
func (s *Service) signalRows(ctx context.Context, symbol string, series domain.PriceSeries) ([][]float64, []bool, error) {
	var rows [][]float64
	var ups []bool
	closes := series.Closes()
	for t := features.MinBars - 1; t < len(series)-1; t++ {
		fv, err := s.engine.Build(ctx, symbol, series[:t+1])
		if err != nil {
			// Early positions can still hit undefined indicators.
			continue
		}
		rows = append(rows, fv.Values())
		ups = append(ups, closes[t+1] > closes[t])
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no usable feature rows from %d bars", len(series))
	}
	return rows, ups, nil
}

func trainAccuracy(model *xgboost.Model, samples [][]float64, labels []bool) float64 {
	if len(samples) == 0 {
		return 0
	}
	correct := 0
	for i := range samples {
		up, _, err := model.Predict(samples[i])
		if err != nil {
			log.Printf("training: accuracy eval skipped sample %d: %v", i, err)
			continue
		}
		if up == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}
