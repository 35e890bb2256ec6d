package xgboost

import (
	"testing"
)

// Two well-separated clusters so a shallow booster learns the boundary.
func makeDataset() ([][]float64, []bool, []string) {
	samples := make([][]float64, 0, 80)
	labels := make([]bool, 0, 80)
	for i := 0; i < 40; i++ {
		f := float64(i) * 0.01
		samples = append(samples, []float64{1 + f, 2 - f, 0.5})
		labels = append(labels, true)
		samples = append(samples, []float64{-1 - f, -2 + f, -0.5})
		labels = append(labels, false)
	}
	return samples, labels, []string{"f0", "f1", "f2"}
}

func TestTrainAndPredict(t *testing.T) {
	t.Parallel()

	samples, labels, names := makeDataset()
	model, err := Train(samples, labels, names, DefaultTrainOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	up, conf, err := model.Predict([]float64{1.2, 1.8, 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up {
		t.Fatal("expected up prediction for up-cluster sample")
	}
	if conf < 0.5 || conf > 1 {
		t.Fatalf("confidence outside argmax bounds: %f", conf)
	}

	down, conf, err := model.Predict([]float64{-1.2, -1.8, -0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if down {
		t.Fatal("expected down prediction for down-cluster sample")
	}
	if conf < 0.5 || conf > 1 {
		t.Fatalf("confidence outside argmax bounds: %f", conf)
	}
}

func TestTrainRejectsSingleClass(t *testing.T) {
	t.Parallel()

	samples := [][]float64{{1, 2}, {2, 3}, {3, 4}}
	labels := []bool{true, true, true}
	if _, err := Train(samples, labels, []string{"a", "b"}, DefaultTrainOptions()); err == nil {
		t.Fatal("expected error for single-class dataset")
	}
}

func TestTrainRejectsNameMismatch(t *testing.T) {
	t.Parallel()

	samples := [][]float64{{1, 2}, {-1, -2}}
	labels := []bool{true, false}
	if _, err := Train(samples, labels, []string{"only-one"}, DefaultTrainOptions()); err == nil {
		t.Fatal("expected error for feature name mismatch")
	}
}

func TestPredictChecksWidth(t *testing.T) {
	t.Parallel()

	samples, labels, names := makeDataset()
	model, err := Train(samples, labels, names, DefaultTrainOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := model.Predict([]float64{1}); err == nil {
		t.Fatal("expected error for narrow sample")
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	t.Parallel()

	samples, labels, names := makeDataset()
	model, err := Train(samples, labels, names, DefaultTrainOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blob, err := model.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, err := UnmarshalBinary(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := restored.FeatureNames(); len(got) != len(names) || got[0] != names[0] {
		t.Fatalf("feature names lost in round trip: %v", got)
	}

	sample := []float64{1.1, 1.9, 0.5}
	upA, confA, _ := model.Predict(sample)
	upB, confB, err := restored.Predict(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upA != upB || confA != confB {
		t.Fatalf("round trip changed prediction: (%v, %f) vs (%v, %f)", upA, confA, upB, confB)
	}
}
