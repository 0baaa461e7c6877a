// Package server assembles the HTTP router from the service layer.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fintrack/internal/docs" // Import swagger docs
	"fintrack/internal/handlers"
	"fintrack/internal/ledger"
	"fintrack/internal/middleware"
	"fintrack/internal/period"
	"fintrack/internal/services"
	"fintrack/internal/taxonomy"
)

// Deps are the shared collaborators every service is built from.
type Deps struct {
	DB       *gorm.DB
	Store    ledger.Store
	Taxonomy *taxonomy.Taxonomy
	Periods  *period.Resolver
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	// Services
	userService := services.NewUserService(d.DB)
	auditService := services.NewAuditService(d.DB)
	transactionService := services.NewTransactionService(d.Store)
	budgetService := services.NewBudgetService(d.Store, d.Taxonomy, d.Periods)
	reportService := services.NewReportService(userService, d.Store, d.Taxonomy, d.Periods)
	adminService := services.NewAdminService(d.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, reportService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, reportService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)
	categoryHandler := handlers.NewCategoryHandler(d.Taxonomy)
	adminHandler := handlers.NewAdminHandler(adminService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(userService))

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/categories", categoryHandler.GetCategories)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("", reportHandler.Dashboard)
	dashboard.GET("/monthly-stats", reportHandler.MonthlyStats)
	dashboard.GET("/spending-categories", reportHandler.SpendingCategories)
	dashboard.GET("/recent-activity", reportHandler.RecentActivity)
	dashboard.GET("/investment-performance", reportHandler.InvestmentPerformance)
	dashboard.GET("/market-overview", reportHandler.MarketOverview)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/recent", transactionHandler.GetRecentTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budget")
	budgets.GET("/overview", budgetHandler.Overview)
	budgets.GET("/categories", budgetHandler.Categories)
	budgets.GET("/grid", budgetHandler.Grid)
	budgets.GET("/limits", budgetHandler.GetLimits)
	budgets.PUT("/limits", budgetHandler.SetLimit)

	reports := protected.Group("/reports")
	reports.GET("/overview", reportHandler.PeriodOverview)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(userService), middleware.RequireAdmin())
	admin.GET("/stats", reportHandler.AdminStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.GET("/logs", adminHandler.ListLogs)

	return router
}
