package handler

import (
	"context"

	"stockcast/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Predictor is the slice of the prediction service the HTTP layer needs.
type Predictor interface {
	Predict(ctx context.Context, symbol string) (*domain.PredictionResult, error)
	PredictDemo(ctx context.Context, symbol string) (*domain.PredictionResult, error)
	PredictBatch(ctx context.Context, symbols []string) (*domain.BatchResult, error)
	ModelsLoaded() bool
	CacheSize(ctx context.Context) int
}

type Handler struct {
	tracer      trace.Tracer
	predictions Predictor
	apiKey      string
	version     string
}

func New(tracer trace.Tracer, predictions Predictor, apiKey, version string) *Handler {
	return &Handler{
		tracer:      tracer,
		predictions: predictions,
		apiKey:      apiKey,
		version:     version,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/health/live", h.Liveness)
	r.GET("/health/ready", h.Readiness)

	api := r.Group("/api/v1", APIKeyAuth(h.apiKey))
	api.GET("/predict", h.Predict)
	api.GET("/predict/demo", h.PredictDemo)
	api.POST("/predict/batch", h.PredictBatch)
}
