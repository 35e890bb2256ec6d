package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns service status, model availability, and cache size
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"version":       h.version,
		"models_loaded": h.predictions.ModelsLoaded(),
		"cache_size":    h.predictions.CacheSize(c.Request.Context()),
	})
}

// Liveness godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health/live [get]
func (h *Handler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Ready only when both model artifacts are loaded
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *Handler) Readiness(c *gin.Context) {
	if !h.predictions.ModelsLoaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "models not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
