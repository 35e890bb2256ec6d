package price

import (
	"fmt"

	"stockcast/internal/domain"
	"stockcast/internal/ml/models/seqreg"
)

// Adapter runs the sequence regressor over the trailing close-price
// window. A min-max scaler is refit per call from the current window, so
// outputs are reproducible for identical inputs but not comparable in
// scaled space across calls.
type Adapter struct {
	model *seqreg.Model
}

func NewAdapter(model *seqreg.Model) *Adapter {
	return &Adapter{model: model}
}

// Loaded reports whether a model handle is present.
func (a *Adapter) Loaded() bool {
	return a != nil && a.model != nil
}

// PredictNext forecasts the next closing price in price units.
func (a *Adapter) PredictNext(series domain.PriceSeries) (float64, error) {
	if !a.Loaded() {
		return 0, fmt.Errorf("%w: price model not loaded", domain.ErrModelUnavailable)
	}
	seqLen := a.model.SequenceLength()
	if len(series) < seqLen {
		return 0, fmt.Errorf("%w: got %d bars, price model needs %d",
			domain.ErrInsufficientHistory, len(series), seqLen)
	}

	closes := series.Closes()
	window := closes[len(closes)-seqLen:]

	lo, hi := minMax(window)
	scaled := make([]float64, seqLen)
	if hi > lo {
		for i, v := range window {
			scaled[i] = (v - lo) / (hi - lo)
		}
	}

	pred, err := a.model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPrediction, err)
	}

	// Inverse transform back to price units. A flat window degenerates to
	// the constant price.
	if hi == lo {
		return lo, nil
	}
	return lo + pred*(hi-lo), nil
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
