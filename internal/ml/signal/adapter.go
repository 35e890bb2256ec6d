package signal

import (
	"fmt"

	"stockcast/internal/domain"
	"stockcast/internal/ml/models/xgboost"
)

// Adapter maps a feature vector through the boosted classifier to a
// trading signal. Confidence is the maximum class probability; the signal
// is BUY when the argmax class is "up", SELL otherwise.
type Adapter struct {
	model *xgboost.Model
}

func NewAdapter(model *xgboost.Model) *Adapter {
	return &Adapter{model: model}
}

// Loaded reports whether a model handle is present.
func (a *Adapter) Loaded() bool {
	return a != nil && a.model != nil
}

// Predict classifies the vector. A width mismatch against the trained
// feature schema is surfaced as an explicit prediction error rather than
// silently misaligned inputs.
func (a *Adapter) Predict(fv domain.FeatureVector) (string, float64, error) {
	if !a.Loaded() {
		return "", 0, fmt.Errorf("%w: signal model not loaded", domain.ErrModelUnavailable)
	}

	values := fv.Values()
	if trained := a.model.FeatureNames(); len(values) != len(trained) {
		return "", 0, fmt.Errorf("%w: feature vector width %d does not match trained schema %d",
			domain.ErrPrediction, len(values), len(trained))
	}

	up, confidence, err := a.model.Predict(values)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", domain.ErrPrediction, err)
	}
	if up {
		return domain.SignalBuy, confidence, nil
	}
	return domain.SignalSell, confidence, nil
}
