package xgboost

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/rmera/boo"
	"github.com/rmera/boo/utils"
)

// Model wraps a boo gradient-boosted classifier trained on binary
// up/down labels. The artifact pins the feature names it was trained
// with; inference callers must present vectors of the same width and
// order.

const (
	labelDown = 0
	labelUp   = 1
)

type TrainOptions struct {
	Rounds       int
	LearningRate float64
	MaxDepth     int
}

type artifact struct {
	FeatureNames []string `json:"feature_names"`
	ModelText    string   `json:"model_text"`
}

type Model struct {
	featureNames []string
	boost        *boo.MultiClass
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Rounds:       40,
		LearningRate: 0.08,
		MaxDepth:     4,
	}
}

// Train fits the classifier on up/down labels (true = next close higher).
// Both classes must be present in the dataset.
func Train(samples [][]float64, labels []bool, featureNames []string, opts TrainOptions) (*Model, error) {
	if len(samples) == 0 || len(samples) != len(labels) {
		return nil, errors.New("invalid training dataset")
	}
	if len(samples[0]) == 0 {
		return nil, errors.New("empty feature vectors")
	}
	if len(featureNames) != len(samples[0]) {
		return nil, errors.New("feature names do not match sample width")
	}

	intLabels := make([]int, len(labels))
	upCount := 0
	for i, up := range labels {
		if up {
			intLabels[i] = labelUp
			upCount++
		} else {
			intLabels[i] = labelDown
		}
	}
	if upCount == 0 || upCount == len(labels) {
		return nil, errors.New("training dataset needs both up and down labels")
	}

	if opts.Rounds <= 0 {
		opts.Rounds = DefaultTrainOptions().Rounds
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultTrainOptions().LearningRate
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultTrainOptions().MaxDepth
	}

	o := boo.DefaultXOptions()
	o.Rounds = opts.Rounds
	o.LearningRate = opts.LearningRate
	o.MaxDepth = opts.MaxDepth
	o.Verbose = false
	o.EarlyStop = 0

	data := &utils.DataBunch{
		Data:   samples,
		Labels: intLabels,
		Keys:   append([]string(nil), featureNames...),
	}
	model := boo.NewMultiClass(data, o)
	if model == nil {
		return nil, errors.New("failed to train boosted classifier")
	}
	return &Model{featureNames: append([]string(nil), featureNames...), boost: model}, nil
}

// Predict returns the argmax class (true = up) and its probability. No
// thresholding beyond argmax; ties resolve to whatever class the
// underlying booster reports first.
func (m *Model) Predict(sample []float64) (bool, float64, error) {
	if m == nil || m.boost == nil {
		return false, 0, errors.New("nil model")
	}
	if len(sample) != len(m.featureNames) {
		return false, 0, errors.New("sample width does not match trained feature count")
	}
	probs := m.boost.PredictSingle(sample)
	classes := m.boost.ClassLabels()
	if len(probs) == 0 || len(probs) != len(classes) {
		return false, 0, errors.New("classifier returned no probabilities")
	}

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return classes[best] == labelUp, clamp01(probs[best]), nil
}

// ProbUp returns the probability of the up class, for evaluation.
func (m *Model) ProbUp(sample []float64) float64 {
	if m == nil || m.boost == nil {
		return 0.5
	}
	probs := m.boost.PredictSingle(sample)
	classes := m.boost.ClassLabels()
	for i := range classes {
		if classes[i] == labelUp && i < len(probs) {
			return clamp01(probs[i])
		}
	}
	return 0.5
}

func (m *Model) FeatureNames() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.featureNames))
	copy(out, m.featureNames)
	return out
}

func (m *Model) MarshalBinary() ([]byte, error) {
	if m == nil || m.boost == nil {
		return nil, errors.New("nil model")
	}
	var buf bytes.Buffer
	if err := boo.JSONMultiClass(m.boost, "softmax", &buf); err != nil {
		return nil, err
	}
	return json.Marshal(artifact{
		FeatureNames: m.featureNames,
		ModelText:    buf.String(),
	})
}

func UnmarshalBinary(blob []byte) (*Model, error) {
	if len(blob) == 0 {
		return nil, errors.New("empty artifact")
	}
	var a artifact
	if err := json.Unmarshal(blob, &a); err != nil {
		return nil, err
	}
	reader := bufio.NewReader(bytes.NewReader([]byte(a.ModelText)))
	model, err := boo.UnJSONMultiClass(reader)
	if err != nil {
		return nil, err
	}
	return &Model{featureNames: append([]string(nil), a.FeatureNames...), boost: model}, nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0.5
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
