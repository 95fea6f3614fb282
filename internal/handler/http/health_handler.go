package http

import (
	"net/http"

	"harumnesia/internal/logger"
	"harumnesia/internal/service"
	"harumnesia/internal/version"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

type HealthHandler struct {
	service *service.HealthService
	appName string
}

var HttpHealthHandlerTracer = otel.Tracer("HttpHealthHandler")

func NewHealthHandler(service *service.HealthService, appName string) *HealthHandler {
	return &HealthHandler{
		service: service,
		appName: appName,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, span := HttpHealthHandlerTracer.Start(c.Request.Context(), "HttpHealthHandler.Check")
	defer span.End()
	logger.Debug(ctx, "HttpHealthHandler")

	status := h.service.Check(ctx)

	overall, code := "UP", http.StatusOK
	if !status.Healthy() {
		overall, code = "DOWN", http.StatusServiceUnavailable
	}

	data := gin.H{"mongodb": status.Mongo}
	if status.MLBreaker != "" {
		data["mlBreaker"] = status.MLBreaker
	}
	c.JSON(code, gin.H{
		"status": overall,
		"data":   data,
	})
}

// Root is the service banner on GET /.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Harumnesia API is running",
		"service": h.appName,
		"version": version.Version,
		"commit":  version.Commit,
	})
}
