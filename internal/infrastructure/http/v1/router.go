// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"salesinvoice/internal/domain/invoicing"
	"salesinvoice/internal/infrastructure/http/v1/handlers"
	"salesinvoice/internal/infrastructure/http/v1/middleware"
	"salesinvoice/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// BookKeeper issues invoices
	BookKeeper *invoicing.BookKeeper

	// TaxPolicy is applied to every issuance and quote
	TaxPolicy invoicing.TaxPolicy

	// PolicyName is reported by health endpoints
	PolicyName string

	// DB is pinged by the readiness probe; nil when no database is configured
	DB handlers.Pinger

	// Version is reported by /health/info
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Recovery sits inside ErrorHandler so recovered panics are still rendered as JSON.
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.PolicyName, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")
	{
		handlers.NewInvoiceHandler(base, cfg.BookKeeper, cfg.TaxPolicy).RegisterRoutes(api.Group("/invoices"))
		handlers.NewTaxHandler(base, cfg.TaxPolicy).RegisterRoutes(api.Group("/taxes"))
	}

	return router
}
