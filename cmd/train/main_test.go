package main

import (
	"context"
	"testing"

	"stockcast/internal/config"
	"stockcast/internal/ml/models/seqreg"
	"stockcast/internal/ml/training"
)

func TestMainTrainsAndWrites(t *testing.T) {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origRun := runTrainingFunc
	origWrite := writeArtifactsFunc
	defer func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		runTrainingFunc = origRun
		writeArtifactsFunc = origWrite
	}()

	dir := t.TempDir()
	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{ModelDir: dir, SequenceLength: 5, TrainBars: 50}
	}

	model, err := seqreg.Train(
		[][]float64{{0.1, 0.2, 0.3, 0.4, 0.5}, {0.2, 0.3, 0.4, 0.5, 0.6}},
		[]float64{0.6, 0.7},
		seqreg.DefaultTrainOptions(),
	)
	if err != nil {
		t.Fatalf("train stub model: %v", err)
	}

	ran := false
	runTrainingFunc = func(_ context.Context, svc *training.Service) (*training.Result, error) {
		ran = true
		return &training.Result{Price: model, PriceWindows: 2, SignalSamples: 2}, nil
	}

	wroteDir := ""
	writeArtifactsFunc = func(dir string, _ *training.Result) error {
		wroteDir = dir
		return nil
	}

	main()

	if !ran {
		t.Fatal("expected training to run")
	}
	if wroteDir != dir {
		t.Fatalf("expected artifacts written to %s, got %s", dir, wroteDir)
	}
}
