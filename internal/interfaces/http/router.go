// Package http assembles the gin router and the HTTP server lifecycle for
// the ranking API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
	"github.com/marty-droid/laundromat-app-v3/internal/interfaces/http/handlers"
	"github.com/marty-droid/laundromat-app-v3/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Listings  *handlers.ListingHandler
	Health    *handlers.HealthHandler
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
	Logger    logging.Logger
	Mode      string
}

// NewRouter builds the gin engine with the full middleware chain and route
// table.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(deps.Mode))

	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger, deps.Metrics),
		middleware.CORS(),
	)

	router.GET("/healthz", deps.Health.Live)
	router.GET("/readyz", deps.Health.Ready)
	if deps.Collector != nil {
		router.GET("/metrics", gin.WrapH(deps.Collector.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/listings", deps.Listings.List)
		v1.GET("/listings/summary", deps.Listings.Summary)
		v1.GET("/listings/map", deps.Listings.Map)
		v1.POST("/listings/refresh", deps.Listings.Refresh)
	}

	return router
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
