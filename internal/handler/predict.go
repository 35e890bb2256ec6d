package handler

import (
	"errors"
	"net/http"

	"stockcast/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type batchRequest struct {
	Symbols []string `json:"symbols" binding:"required"`
}

// Predict godoc
// @Summary      Predict next-day price and trading signal
// @Description  Runs the full pipeline for one ticker: fetches daily history, derives features, and returns the predicted close with a BUY/SELL signal
// @Tags         predictions
// @Produce      json
// @Param        symbol  query  string  true  "Stock ticker (1-5 letters, e.g. AAPL)"
// @Success      200  {object}  domain.PredictionResult
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/predict [get]
func (h *Handler) Predict(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.predict")
	defer span.End()

	symbol := c.Query("symbol")
	span.SetAttributes(attribute.String("symbol", symbol))

	result, err := h.predictions.Predict(ctx, symbol)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// PredictDemo godoc
// @Summary      Predict against seeded synthetic data
// @Description  Runs the same pipeline over a deterministic synthetic series, so the API can be exercised without market access
// @Tags         predictions
// @Produce      json
// @Param        symbol  query  string  true  "Stock ticker (1-5 letters, e.g. AAPL)"
// @Success      200  {object}  domain.PredictionResult
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/predict/demo [get]
func (h *Handler) PredictDemo(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.predict-demo")
	defer span.End()

	symbol := c.Query("symbol")
	span.SetAttributes(attribute.String("symbol", symbol))

	result, err := h.predictions.PredictDemo(ctx, symbol)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// PredictBatch godoc
// @Summary      Predict for a batch of tickers
// @Description  Runs the pipeline for up to the configured batch size. Failed tickers yield an ERROR slot instead of failing the batch
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        request  body  batchRequest  true  "Tickers to predict"
// @Success      200  {object}  domain.BatchResult
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/predict/batch [post]
func (h *Handler) PredictBatch(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.predict-batch")
	defer span.End()

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	span.SetAttributes(attribute.Int("batch.size", len(req.Symbols)))

	batch, err := h.predictions.PredictBatch(ctx, req.Symbols)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, batch)
}

// statusFor maps the pipeline error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrModelUnavailable),
		errors.Is(err, domain.ErrModelLoad),
		errors.Is(err, domain.ErrDataFetch):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
