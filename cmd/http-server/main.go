package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harumnesia/internal/config"
	"harumnesia/internal/database"
	handler "harumnesia/internal/handler/http"
	"harumnesia/internal/logger"
	middleware_http "harumnesia/internal/middleware/http"
	"harumnesia/internal/recommend"
	"harumnesia/internal/repository"
	"harumnesia/internal/service"
	"harumnesia/internal/tracer"
	"harumnesia/internal/version"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var localOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = append(append([]string{}, cfg.FrontendURLs...), localOrigins...)
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "traceparent"}
	c.ExposeHeaders = []string{"X-Trace-ID"}
	c.AllowCredentials = true
	return c
}

// newRouter assembles the engine: API routes, Prometheus scrape endpoint
// and uploaded brand images.
func newRouter(cfg *config.Config, handlers handler.Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware_http.TraceMiddleware())

	handler.RegisterRoutes(router, handlers)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/uploads", cfg.UploadsDir)
	return router
}

func main() {
	globalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Instance()
	cfg := config.Instance()
	logger.ConfigureRemote(cfg.RemoteLogHttpURI)

	log.Info(cfg.AppName,
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("buildTime", version.BuildTime),
	)

	// Initialize telemetry (OpenTelemetry + Pyroscope)
	shutdownTracer, err := tracer.Instance(globalCtx, cfg)
	if err != nil {
		log.Warn("Tracing disabled", slog.String("error", err.Error()))
	}

	// Connect to MongoDB
	db, err := database.Instance(globalCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wiring
	perfumeRepo := repository.NewPerfumeRepository(db.Database)
	interRepo := repository.NewInterPerfumeRepository(db.Database)
	brandRepo := repository.NewBrandRepository(db.Database)
	if err := brandRepo.EnsureIndexes(globalCtx); err != nil {
		log.Warn("Failed to ensure brand indexes", slog.String("error", err.Error()))
	}

	mlClient := recommend.NewClient(cfg.MLServiceURL, recommend.BreakerSettings{})

	handlers := handler.Handlers{
		Perfume:      handler.NewPerfumeHandler(service.NewPerfumeService(perfumeRepo)),
		InterPerfume: handler.NewInterPerfumeHandler(service.NewInterPerfumeService(interRepo)),
		Brand:        handler.NewBrandHandler(service.NewBrandService(brandRepo, perfumeRepo)),
		Recommendation: handler.NewRecommendationHandler(
			service.NewRecommendationService(perfumeRepo, mlClient, cfg.MLSimilarityTimeout, cfg.MLPreferenceTimeout),
		),
		Health: handler.NewHealthHandler(service.NewHealthService(db, mlClient), cfg.AppName),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, handlers)

	// HTTP server; the write timeout leaves room for the slowest ML call.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.MLPreferenceTimeout + 10*time.Second,
	}

	go func() {
		log.Info("HTTP server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-globalCtx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	shutdownTracer(shutdownCtx)
	db.Disconnect(shutdownCtx)
}
