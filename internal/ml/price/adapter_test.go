package price

import (
	"errors"
	"testing"

	"stockcast/internal/domain"
	"stockcast/internal/ml/models/seqreg"
)

func trainTestModel(t *testing.T, seqLen int) *seqreg.Model {
	t.Helper()

	seq := make([]float64, 0, 200)
	v := 0.2
	for i := 0; i < 200; i++ {
		v += 0.003
		if v > 0.9 {
			v = 0.2
		}
		seq = append(seq, v)
	}
	windows := make([][]float64, 0, len(seq)-seqLen)
	targets := make([]float64, 0, len(seq)-seqLen)
	for i := 0; i+seqLen < len(seq); i++ {
		windows = append(windows, seq[i:i+seqLen])
		targets = append(targets, seq[i+seqLen])
	}
	model, err := seqreg.Train(windows, targets, seqreg.DefaultTrainOptions())
	if err != nil {
		t.Fatalf("train test model: %v", err)
	}
	return model
}

func makeSeries(n int, start, step float64) domain.PriceSeries {
	out := make(domain.PriceSeries, n)
	for i := range out {
		c := start + float64(i)*step
		out[i] = domain.PriceBar{Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1e6}
	}
	return out
}

func TestPredictNextUnavailableWithoutModel(t *testing.T) {
	t.Parallel()

	a := NewAdapter(nil)
	if a.Loaded() {
		t.Fatal("expected unloaded adapter")
	}
	_, err := a.PredictNext(makeSeries(40, 100, 1))
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestPredictNextRejectsShortWindow(t *testing.T) {
	t.Parallel()

	a := NewAdapter(trainTestModel(t, 30))
	_, err := a.PredictNext(makeSeries(10, 100, 1))
	if !errors.Is(err, domain.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestPredictNextDeterministicAndPriceScaled(t *testing.T) {
	t.Parallel()

	a := NewAdapter(trainTestModel(t, 30))
	series := makeSeries(60, 150, 0.5)

	first, err := a.PredictNext(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.PredictNext(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected deterministic forecast, got %f vs %f", first, second)
	}

	// The inverse transform must land near the window's price range, not
	// in scaled [0,1] space.
	if first < 100 || first > 250 {
		t.Fatalf("forecast not in price units: %f", first)
	}
}

func TestPredictNextFlatWindow(t *testing.T) {
	t.Parallel()

	a := NewAdapter(trainTestModel(t, 30))
	got, err := a.PredictNext(makeSeries(40, 100, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Fatalf("expected flat series to forecast the constant price, got %f", got)
	}
}
