package http

import (
	"net/http"
	"strconv"

	"harumnesia/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

type InterPerfumeHandler struct {
	service *service.InterPerfumeService
}

var HttpInterPerfumeHandlerTracer = otel.Tracer("HttpInterPerfumeHandler")

func NewInterPerfumeHandler(service *service.InterPerfumeService) *InterPerfumeHandler {
	return &InterPerfumeHandler{
		service: service,
	}
}

// queryInt reads a positive integer query parameter; anything else is 0.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (h *InterPerfumeHandler) List(c *gin.Context) {
	ctx, span := HttpInterPerfumeHandlerTracer.Start(c.Request.Context(), "HttpInterPerfumeHandler.List")
	defer span.End()

	perfumes, err := h.service.List(ctx, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perfumes)
}

func (h *InterPerfumeHandler) Brands(c *gin.Context) {
	ctx, span := HttpInterPerfumeHandlerTracer.Start(c.Request.Context(), "HttpInterPerfumeHandler.Brands")
	defer span.End()

	brands, err := h.service.Brands(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *InterPerfumeHandler) ByBrand(c *gin.Context) {
	ctx, span := HttpInterPerfumeHandlerTracer.Start(c.Request.Context(), "HttpInterPerfumeHandler.ByBrand")
	defer span.End()

	perfumes, err := h.service.ByBrand(ctx, c.Param("brand"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perfumes)
}

func (h *InterPerfumeHandler) Search(c *gin.Context) {
	ctx, span := HttpInterPerfumeHandlerTracer.Start(c.Request.Context(), "HttpInterPerfumeHandler.Search")
	defer span.End()

	perfumes, err := h.service.Search(ctx, c.Query("q"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perfumes)
}

func (h *InterPerfumeHandler) Dropdown(c *gin.Context) {
	ctx, span := HttpInterPerfumeHandlerTracer.Start(c.Request.Context(), "HttpInterPerfumeHandler.Dropdown")
	defer span.End()

	data, err := h.service.Dropdown(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
