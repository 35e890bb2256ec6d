package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockcast/internal/cache"
	"stockcast/internal/config"
	"stockcast/internal/domain"
	"stockcast/internal/handler"
	"stockcast/internal/job"
	"stockcast/internal/metrics"
	"stockcast/internal/ml/features"
	"stockcast/internal/ml/price"
	"stockcast/internal/ml/registry"
	mlsignal "stockcast/internal/ml/signal"
	"stockcast/internal/provider"
	"stockcast/internal/sentiment"
	"stockcast/internal/service"
	"stockcast/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "stockcast/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	connectRedisFunc       = cache.Connect
	loadModelsFunc         = registry.Load
	newMetricsFunc         = metrics.New
	startWarmerFunc        = func(w *job.CacheWarmer, ctx context.Context) { go w.Start(ctx) }
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Stockcast API
// @version         1.0
// @description     Next-day stock price prediction and trading signal service.

// @host      localhost:8000
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Prediction cache: Redis when configured, in-memory otherwise.
	var store service.PredictionStore = cache.NewMemoryStore(cache.NewMemory[domain.PredictionResult](nil))
	if cfg.RedisURL != "" {
		client, err := connectRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("redis unavailable, using in-memory cache: %v", err)
		} else {
			store = cache.NewRedisStore(client)
		}
	}

	models := loadModelsFunc(cfg.ModelDir)
	if !models.Loaded() {
		log.Printf("Warning: model artifacts missing in %s, run cmd/train first", cfg.ModelDir)
	}

	// Sentiment: LLM scorer when a key is present, seeded placeholder otherwise.
	var sentimentSource features.SentimentSource = sentiment.NewSeeded()
	if scorer := sentiment.NewOpenAIScorer(cfg.OpenAIAPIKey, cfg.OpenAIModel); scorer != nil {
		sentimentSource = scorer
	}

	svc := service.NewPredictionService(
		service.Config{
			ModelVersion: cfg.ModelVersion,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL(),
			MaxBatchSize: cfg.MaxBatchSize,
		},
		service.Deps{
			Tracer:   tracer,
			Data:     provider.NewYahooProvider(tracer, cfg.YahooTimeout()),
			DemoData: provider.NewSyntheticProvider(),
			Store:    store,
			Features: features.NewEngine(sentimentSource),
			Price:    price.NewAdapter(models.Price),
			Signal:   mlsignal.NewAdapter(models.Signal),
			Metrics:  newMetricsFunc(),
		},
	)

	// Keep watchlist symbols warm in the cache (stopped by ctx cancel).
	warmer := job.NewCacheWarmer(tracer, svc, cfg.Watchlist, cfg.WarmIntervalSecs)
	startWarmerFunc(warmer, ctx)

	h := handler.New(tracer, svc, cfg.APIKey, cfg.ModelVersion)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("stockcast"))

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
