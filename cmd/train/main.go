package main

import (
	"context"
	"log"

	"stockcast/internal/config"
	"stockcast/internal/ml/features"
	"stockcast/internal/ml/training"
	"stockcast/internal/sentiment"

	"github.com/joho/godotenv"
)

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	runTrainingFunc    = func(ctx context.Context, svc *training.Service) (*training.Result, error) { return svc.Run(ctx) }
	writeArtifactsFunc = training.WriteArtifacts
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	trainCfg := training.DefaultConfig()
	trainCfg.SequenceLength = cfg.SequenceLength
	trainCfg.Bars = cfg.TrainBars

	// Training always uses the seeded sentiment source so artifacts are
	// reproducible regardless of API keys.
	svc := training.NewService(features.NewEngine(sentiment.NewSeeded()), trainCfg)

	result, err := runTrainingFunc(context.Background(), svc)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf("price model: %d windows, sequence length %d", result.PriceWindows, result.Price.SequenceLength())
	log.Printf("signal model: %d samples, train accuracy %.3f", result.SignalSamples, result.SignalAccuracy)

	if err := writeArtifactsFunc(cfg.ModelDir, result); err != nil {
		log.Fatalf("write artifacts: %v", err)
	}
	log.Printf("artifacts written to %s", cfg.ModelDir)
}
