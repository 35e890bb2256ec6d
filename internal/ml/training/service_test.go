package training

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"stockcast/internal/ml/features"
	"stockcast/internal/ml/models/seqreg"
	"stockcast/internal/ml/models/xgboost"
	"stockcast/internal/ml/registry"
	"stockcast/internal/sentiment"
)

func smallConfig() Config {
	return Config{
		Symbols:        []string{"AAPL", "MSFT"},
		Bars:           120,
		SequenceLength: 30,
		PriceOpts:      seqreg.TrainOptions{LearningRate: 0.05, Epochs: 100, L2: 0.0001},
		SignalOpts:     xgboost.TrainOptions{Rounds: 8, LearningRate: 0.1, MaxDepth: 3},
	}
}

func TestRunTrainsBothModels(t *testing.T) {
	t.Parallel()

	engine := features.NewEngine(sentiment.NewSeeded())
	svc := NewService(engine, smallConfig())

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Price == nil || result.Signal == nil {
		t.Fatal("expected both models trained")
	}
	if result.Price.SequenceLength() != 30 {
		t.Fatalf("expected sequence length 30, got %d", result.Price.SequenceLength())
	}
	if result.PriceWindows == 0 || result.SignalSamples == 0 {
		t.Fatalf("expected non-empty datasets, got %d windows and %d samples",
			result.PriceWindows, result.SignalSamples)
	}
	if result.SignalAccuracy <= 0.5 {
		t.Fatalf("expected training accuracy above chance, got %.3f", result.SignalAccuracy)
	}
}

func TestWriteArtifactsRoundTrip(t *testing.T) {
	t.Parallel()

	engine := features.NewEngine(sentiment.NewSeeded())
	svc := NewService(engine, smallConfig())
	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "models")
	if err := WriteArtifacts(dir, result); err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	for _, name := range []string{registry.PriceArtifactFile, registry.SignalArtifactFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected artifact %s: %v", name, err)
		}
	}

	models := registry.Load(dir)
	if !models.Loaded() {
		t.Fatal("expected registry to load both artifacts")
	}
}

func TestPriceWindowsScaling(t *testing.T) {
	t.Parallel()

	closes := []float64{1, 2, 3, 4, 5, 6}
	windows, targets := priceWindows(closes, 3)
	if len(windows) != 3 || len(targets) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	// First window {1,2,3} scales to {0, 0.5, 1}; target 4 scales to 1.5.
	if windows[0][0] != 0 || windows[0][1] != 0.5 || windows[0][2] != 1 {
		t.Fatalf("unexpected scaled window: %v", windows[0])
	}
	if targets[0] != 1.5 {
		t.Fatalf("unexpected target: %v", targets[0])
	}
}

func TestPriceWindowsSkipsFlat(t *testing.T) {
	t.Parallel()

	windows, _ := priceWindows([]float64{5, 5, 5, 5, 5}, 3)
	if len(windows) != 0 {
		t.Fatalf("expected flat windows skipped, got %d", len(windows))
	}
}
