package seqreg

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Model is a linear autoregressor over a fixed-length window of min-max
// scaled closing prices. It predicts the next scaled value; callers own
// the scaling and inverse transform.

type TrainOptions struct {
	LearningRate float64
	Epochs       int
	L2           float64
}

type Artifact struct {
	SequenceLength int       `json:"sequence_length"`
	Weights        []float64 `json:"weights"`
	Bias           float64   `json:"bias"`
	L2             float64   `json:"l2"`
	LearningRate   float64   `json:"learning_rate"`
	Epochs         int       `json:"epochs"`
}

type Model struct {
	artifact Artifact
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		LearningRate: 0.05,
		Epochs:       800,
		L2:           0.0001,
	}
}

// Train fits the regressor with batch gradient descent on mean squared
// error. Every window must have the same length; targets are the scaled
// next value of each window.
func Train(windows [][]float64, targets []float64, opts TrainOptions) (*Model, error) {
	if len(windows) == 0 || len(windows) != len(targets) {
		return nil, errors.New("invalid training dataset")
	}
	seqLen := len(windows[0])
	if seqLen == 0 {
		return nil, errors.New("empty windows")
	}
	for i := range windows {
		if len(windows[i]) != seqLen {
			return nil, fmt.Errorf("window %d has length %d, want %d", i, len(windows[i]), seqLen)
		}
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultTrainOptions().LearningRate
	}
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultTrainOptions().Epochs
	}
	if opts.L2 < 0 {
		opts.L2 = DefaultTrainOptions().L2
	}

	weights := make([]float64, seqLen)
	bias := 0.0
	n := float64(len(windows))

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		grads := make([]float64, seqLen)
		gradBias := 0.0
		for i := range windows {
			pred := dot(weights, windows[i]) + bias
			err := pred - targets[i]
			for j := range grads {
				grads[j] += err * windows[i][j]
			}
			gradBias += err
		}
		for j := range weights {
			grads[j] = grads[j]/n + opts.L2*weights[j]
			weights[j] -= opts.LearningRate * grads[j]
		}
		bias -= opts.LearningRate * (gradBias / n)
	}

	return &Model{artifact: Artifact{
		SequenceLength: seqLen,
		Weights:        weights,
		Bias:           bias,
		L2:             opts.L2,
		LearningRate:   opts.LearningRate,
		Epochs:         opts.Epochs,
	}}, nil
}

// Predict returns the next scaled value for a window of SequenceLength
// scaled closes.
func (m *Model) Predict(window []float64) (float64, error) {
	if m == nil {
		return 0, errors.New("nil model")
	}
	if len(window) != m.artifact.SequenceLength {
		return 0, fmt.Errorf("window length %d, model expects %d", len(window), m.artifact.SequenceLength)
	}
	return dot(m.artifact.Weights, window) + m.artifact.Bias, nil
}

func (m *Model) SequenceLength() int {
	if m == nil {
		return 0
	}
	return m.artifact.SequenceLength
}

func (m *Model) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, errors.New("nil model")
	}
	return json.Marshal(m.artifact)
}

func UnmarshalBinary(data []byte) (*Model, error) {
	if len(data) == 0 {
		return nil, errors.New("empty artifact")
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	if a.SequenceLength <= 0 || len(a.Weights) != a.SequenceLength {
		return nil, errors.New("invalid artifact")
	}
	return &Model{artifact: a}, nil
}

func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
