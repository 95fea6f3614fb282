package http

import (
	"net/http"

	"harumnesia/internal/model"
	"harumnesia/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

type BrandHandler struct {
	service *service.BrandService
}

var HttpBrandHandlerTracer = otel.Tracer("HttpBrandHandler")

func NewBrandHandler(service *service.BrandService) *BrandHandler {
	return &BrandHandler{
		service: service,
	}
}

func (h *BrandHandler) List(c *gin.Context) {
	ctx, span := HttpBrandHandlerTracer.Start(c.Request.Context(), "HttpBrandHandler.List")
	defer span.End()

	brands, err := h.service.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *BrandHandler) Get(c *gin.Context) {
	ctx, span := HttpBrandHandlerTracer.Start(c.Request.Context(), "HttpBrandHandler.Get")
	defer span.End()

	brand, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) Perfumes(c *gin.Context) {
	ctx, span := HttpBrandHandlerTracer.Start(c.Request.Context(), "HttpBrandHandler.Perfumes")
	defer span.End()

	perfumes, err := h.service.Perfumes(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perfumes)
}

func (h *BrandHandler) Create(c *gin.Context) {
	ctx, span := HttpBrandHandlerTracer.Start(c.Request.Context(), "HttpBrandHandler.Create")
	defer span.End()

	var payload model.CreateBrandPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	brand, err := h.service.Create(ctx, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func (h *BrandHandler) Update(c *gin.Context) {
	ctx, span := HttpBrandHandlerTracer.Start(c.Request.Context(), "HttpBrandHandler.Update")
	defer span.End()

	var payload model.UpdateBrandPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	brand, err := h.service.Update(ctx, c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) Delete(c *gin.Context) {
	ctx, span := HttpBrandHandlerTracer.Start(c.Request.Context(), "HttpBrandHandler.Delete")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Brand deleted successfully"})
}
