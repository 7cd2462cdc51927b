package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fleet-optimizer/internal/api/handlers"
	"fleet-optimizer/internal/api/middleware"
	"fleet-optimizer/internal/metrics"
	"fleet-optimizer/internal/runstore"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	runTTL := time.Hour
	if ttlStr := os.Getenv("RUN_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			runTTL = parsed
		}
	}

	var corsOrigins []string
	if raw := os.Getenv("API_CORS_ORIGINS"); raw != "" {
		corsOrigins = strings.Split(raw, ",")
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	metrics.RegisterDefault()
	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RateLimit(10, 20))

	// Initialize handlers around the shared run archive
	store := runstore.New(runTTL)
	defer store.Close()
	selectHandler := handlers.NewSelectHandler(store)
	optimizeHandler := handlers.NewOptimizeHandler(store)
	analyticsHandler := handlers.NewAnalyticsHandler(store)
	metaHandler := handlers.NewMetaHandler(store)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint, on the service registry only
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/select", selectHandler.RunSelect)

		api.POST("/optimize", optimizeHandler.RunOptimize)
		api.POST("/optimize/compare", optimizeHandler.CompareSelectors)

		api.POST("/analytics/sweep", analyticsHandler.RunSweep)
		api.POST("/analytics/pareto", analyticsHandler.RunPareto)
		api.POST("/analytics/dominate", analyticsHandler.RunDominate)
		api.POST("/analytics/claim", analyticsHandler.RunClaim)

		api.GET("/fuel-types", metaHandler.ListFuelTypes)
		api.GET("/runs/:id", metaHandler.GetRun)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
