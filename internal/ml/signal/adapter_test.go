package signal

import (
	"errors"
	"testing"

	"stockcast/internal/domain"
	"stockcast/internal/ml/models/xgboost"
)

func trainTestModel(t *testing.T) *xgboost.Model {
	t.Helper()

	samples := make([][]float64, 0, 80)
	labels := make([]bool, 0, 80)
	width := len(domain.FeatureNames)
	for i := 0; i < 40; i++ {
		up := make([]float64, width)
		down := make([]float64, width)
		for j := range up {
			up[j] = 1 + float64(i)*0.01
			down[j] = -1 - float64(i)*0.01
		}
		samples = append(samples, up, down)
		labels = append(labels, true, false)
	}
	model, err := xgboost.Train(samples, labels, domain.FeatureNames, xgboost.DefaultTrainOptions())
	if err != nil {
		t.Fatalf("train test model: %v", err)
	}
	return model
}

func upVector() domain.FeatureVector {
	return domain.FeatureVector{
		Returns: 1, MA10: 1, MA30: 1, Volatility: 1,
		RSI: 1, MACD: 1, MACDSignal: 1, MACDHistogram: 1,
		CloseLag1: 1, CloseLag2: 1, CloseLag3: 1, CloseLag4: 1, CloseLag5: 1,
		ReturnsLag1: 1, ReturnsLag2: 1, ReturnsLag3: 1, ReturnsLag4: 1, ReturnsLag5: 1,
		Momentum5: 1, Momentum10: 1,
		VolumeRatio: 1, BBPosition: 1,
		NewsSentiment: 1,
	}
}

func TestPredictUnavailableWithoutModel(t *testing.T) {
	t.Parallel()

	a := NewAdapter(nil)
	_, _, err := a.Predict(upVector())
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestPredictRejectsSchemaWidthMismatch(t *testing.T) {
	t.Parallel()

	samples := [][]float64{{1, 2, 3}, {-1, -2, -3}, {1.1, 2.1, 3.1}, {-1.1, -2.1, -3.1}}
	labels := []bool{true, false, true, false}
	narrow, err := xgboost.Train(samples, labels, []string{"a", "b", "c"}, xgboost.DefaultTrainOptions())
	if err != nil {
		t.Fatalf("train narrow model: %v", err)
	}

	a := NewAdapter(narrow)
	_, _, err = a.Predict(upVector())
	if !errors.Is(err, domain.ErrPrediction) {
		t.Fatalf("expected ErrPrediction on width mismatch, got %v", err)
	}
}

func TestPredictBuySellAndBounds(t *testing.T) {
	t.Parallel()

	a := NewAdapter(trainTestModel(t))

	sig, conf, err := a.Predict(upVector())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != domain.SignalBuy {
		t.Fatalf("expected BUY, got %s", sig)
	}
	if conf < 0 || conf > 1 {
		t.Fatalf("confidence out of bounds: %f", conf)
	}

	downFV := domain.FeatureVector{
		Returns: -1, MA10: -1, MA30: -1, Volatility: -1,
		RSI: -1, MACD: -1, MACDSignal: -1, MACDHistogram: -1,
		CloseLag1: -1, CloseLag2: -1, CloseLag3: -1, CloseLag4: -1, CloseLag5: -1,
		ReturnsLag1: -1, ReturnsLag2: -1, ReturnsLag3: -1, ReturnsLag4: -1, ReturnsLag5: -1,
		Momentum5: -1, Momentum10: -1,
		VolumeRatio: -1, BBPosition: -1,
		NewsSentiment: -1,
	}
	sig, conf, err = a.Predict(downFV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != domain.SignalSell {
		t.Fatalf("expected SELL, got %s", sig)
	}
	if conf < 0 || conf > 1 {
		t.Fatalf("confidence out of bounds: %f", conf)
	}
}
