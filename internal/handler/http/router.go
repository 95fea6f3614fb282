package http

import "github.com/gin-gonic/gin"

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Perfume        *PerfumeHandler
	InterPerfume   *InterPerfumeHandler
	Brand          *BrandHandler
	Recommendation *RecommendationHandler
	Health         *HealthHandler
}

func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Check)

	api := r.Group("/api")

	perfumes := api.Group("/perfumes")
	perfumes.GET("", h.Perfume.GetAll)
	perfumes.GET("/brands", h.Perfume.Brands)
	perfumes.GET("/page/:pageNumber", h.Perfume.GetPage)
	perfumes.GET("/brand/:brandName", h.Perfume.GetByBrand)
	perfumes.GET("/:id", h.Perfume.GetByID)
	perfumes.POST("/recommend", h.Recommendation.Similar)

	api.POST("/ml/recommend", h.Recommendation.ByPreference)

	brands := api.Group("/brands")
	brands.GET("", h.Brand.List)
	brands.POST("", h.Brand.Create)
	brands.GET("/:id", h.Brand.Get)
	brands.GET("/:id/perfumes", h.Brand.Perfumes)
	brands.PUT("/:id", h.Brand.Update)
	brands.DELETE("/:id", h.Brand.Delete)

	inter := api.Group("/inter")
	inter.GET("/perfumes", h.InterPerfume.List)
	inter.GET("/brands", h.InterPerfume.Brands)
	inter.GET("/brands/:brand/perfumes", h.InterPerfume.ByBrand)
	inter.GET("/search", h.InterPerfume.Search)
	inter.GET("/dropdown", h.InterPerfume.Dropdown)
}
