package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/service"
	"github.com/controledu/controledu-api/pkg/response"
)

// MetricsHandler exposes the runtime snapshot for the principal's
// system view. The raw Prometheus endpoint lives at /metrics.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs MetricsHandler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Snapshot godoc
// @Summary Metricas del sistema
// @Tags Director
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /director/metricas [get]
func (h *MetricsHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot())
}
