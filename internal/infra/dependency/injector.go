// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Zerkath/finance-app/config"
	"github.com/Zerkath/finance-app/internal/application/usecase/category"
	"github.com/Zerkath/finance-app/internal/application/usecase/report"
	"github.com/Zerkath/finance-app/internal/application/usecase/transaction"
	"github.com/Zerkath/finance-app/internal/infra/server/router"
	"github.com/Zerkath/finance-app/internal/integration/adapters"
	"github.com/Zerkath/finance-app/internal/integration/entrypoint/controller"
	"github.com/Zerkath/finance-app/internal/integration/entrypoint/middleware"
	"github.com/Zerkath/finance-app/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	RateLimiter middleware.Limiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case rate limiting is kept in process.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *Injector {
	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	reportRepo := persistence.NewReportRepository(db)

	// Create report use cases
	basicReportUseCase := report.NewGetBasicReportUseCase(reportRepo)
	reportTypesUseCase := report.NewGetReportTypesUseCase()
	chartUseCase := report.NewRenderReportChartUseCase(basicReportUseCase)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, categoryRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	setCategoriesUseCase := transaction.NewSetTransactionCategoriesUseCase(transactionRepo, categoryRepo)

	// Create controllers
	cacheBackend := "memory"
	if redisClient != nil {
		cacheBackend = "redis"
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheBackend)

	reportController := controller.NewReportController(
		basicReportUseCase,
		reportTypesUseCase,
		chartUseCase,
		cfg.Server.ReportTimeout.Duration,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
		setCategoriesUseCase,
	)

	// Create middleware
	var rateLimiter middleware.Limiter
	if redisClient != nil {
		rateLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window.Duration)
	} else {
		rateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window.Duration)
	}

	var authMiddleware *middleware.AuthMiddleware
	if cfg.Auth.JWTSecret != "" {
		authMiddleware = middleware.NewAuthMiddleware(adapters.NewTokenService(cfg.Auth.JWTSecret))
	}

	r := router.NewRouter(healthController, reportController, categoryController, transactionController, rateLimiter, authMiddleware)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		RateLimiter: rateLimiter,
	}
}
