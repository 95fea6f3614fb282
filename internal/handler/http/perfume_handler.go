package http

import (
	"net/http"

	"harumnesia/internal/logger"
	"harumnesia/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

type PerfumeHandler struct {
	service *service.PerfumeService
}

var HttpPerfumeHandlerTracer = otel.Tracer("HttpPerfumeHandler")

func NewPerfumeHandler(service *service.PerfumeService) *PerfumeHandler {
	return &PerfumeHandler{
		service: service,
	}
}

func (h *PerfumeHandler) GetAll(c *gin.Context) {
	ctx, span := HttpPerfumeHandlerTracer.Start(c.Request.Context(), "HttpPerfumeHandler.GetAll")
	defer span.End()
	logger.Debug(ctx, "HttpPerfumeHandler")

	perfumes, err := h.service.GetAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perfumes)
}

func (h *PerfumeHandler) GetPage(c *gin.Context) {
	ctx, span := HttpPerfumeHandlerTracer.Start(c.Request.Context(), "HttpPerfumeHandler.GetPage")
	defer span.End()

	page, err := h.service.GetPage(ctx, service.ParsePage(c.Param("pageNumber")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PerfumeHandler) GetByID(c *gin.Context) {
	ctx, span := HttpPerfumeHandlerTracer.Start(c.Request.Context(), "HttpPerfumeHandler.GetByID")
	defer span.End()

	perfume, err := h.service.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perfume)
}

func (h *PerfumeHandler) GetByBrand(c *gin.Context) {
	ctx, span := HttpPerfumeHandlerTracer.Start(c.Request.Context(), "HttpPerfumeHandler.GetByBrand")
	defer span.End()

	perfumes, err := h.service.GetByBrand(ctx, c.Param("brandName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perfumes)
}

func (h *PerfumeHandler) Brands(c *gin.Context) {
	ctx, span := HttpPerfumeHandlerTracer.Start(c.Request.Context(), "HttpPerfumeHandler.Brands")
	defer span.End()

	brands, err := h.service.Brands(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

