// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Zerkath/finance-app/internal/integration/entrypoint/controller"
	"github.com/Zerkath/finance-app/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	reportController      *controller.ReportController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	rateLimiter           middleware.Limiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
// A nil rateLimiter or authMiddleware leaves the API unthrottled or unauthenticated.
func NewRouter(
	healthController *controller.HealthController,
	reportController *controller.ReportController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	rateLimiter middleware.Limiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		reportController:      reportController,
		categoryController:    categoryController,
		transactionController: transactionController,
		rateLimiter:           rateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	if environment == "test" {
		r.engine = gin.New()
		r.engine.Use(gin.Recovery())
	} else {
		// Default middleware (logger and recovery)
		r.engine = gin.Default()
	}
	r.engine.Use(middleware.RequestID())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(middleware.RateLimit(r.rateLimiter))
	}
	if r.authMiddleware != nil {
		v1.Use(r.authMiddleware.Authenticate())
	}

	if r.reportController != nil {
		reports := v1.Group("/reports")
		{
			reports.GET("/types", r.reportController.Types)
			reports.GET("/basic", r.reportController.Basic)
			reports.GET("/basic/chart", r.reportController.Chart)
		}
	}

	if r.categoryController != nil {
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.DELETE("/:id", r.categoryController.Delete)
		}
	}

	if r.transactionController != nil {
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.DELETE("/:id", r.transactionController.Delete)
			transactions.PUT("/:id/categories", r.transactionController.SetCategories)
		}
	}
}
