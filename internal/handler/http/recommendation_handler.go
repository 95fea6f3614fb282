package http

import (
	"log/slog"
	"net/http"

	"harumnesia/internal/logger"
	"harumnesia/internal/model"
	"harumnesia/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

type RecommendationHandler struct {
	service *service.RecommendationService
}

var HttpRecommendationHandlerTracer = otel.Tracer("HttpRecommendationHandler")

func NewRecommendationHandler(service *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
	}
}

// Similar handles POST /api/perfumes/recommend.
func (h *RecommendationHandler) Similar(c *gin.Context) {
	ctx, span := HttpRecommendationHandlerTracer.Start(c.Request.Context(), "HttpRecommendationHandler.Similar")
	defer span.End()

	var req model.SimilarityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Similar(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info(ctx, "Recommendations served",
		slog.String("source", result.Source),
		slog.Int("count", result.Count),
	)
	c.JSON(http.StatusOK, result)
}

// ByPreference handles POST /api/ml/recommend.
func (h *RecommendationHandler) ByPreference(c *gin.Context) {
	ctx, span := HttpRecommendationHandlerTracer.Start(c.Request.Context(), "HttpRecommendationHandler.ByPreference")
	defer span.End()

	var req model.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.ByPreference(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info(ctx, "Recommendations served",
		slog.String("source", result.Source),
		slog.Int("count", result.Count),
	)
	c.JSON(http.StatusOK, result)
}
