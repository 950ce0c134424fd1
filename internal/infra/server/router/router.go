// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/controller"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	accountController     *controller.AccountController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	budgetController      *controller.BudgetController
	goalController        *controller.GoalController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	budgetController *controller.BudgetController,
	goalController *controller.GoalController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		accountController:     accountController,
		categoryController:    categoryController,
		transactionController: transactionController,
		budgetController:      budgetController,
		goalController:        goalController,
		dashboardController:   dashboardController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

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
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.loginRateLimiter.Middleware(), r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.authMiddleware == nil {
			return
		}

		if r.userController != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.GetProfile)
				users.PATCH("/me", r.userController.UpdatePreferences)
			}
		}

		if r.accountController != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
				accounts.GET("/:id", r.accountController.Get)
				accounts.PATCH("/:id", r.accountController.Update)
				accounts.DELETE("/:id", r.accountController.Deactivate)
			}
		}

		if r.categoryController != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/:id", r.transactionController.Get)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.budgetController != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.GET("/:id", r.budgetController.Get)
				budgets.PATCH("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
				budgets.POST("/:id/refresh", r.budgetController.Refresh)
			}
		}

		if r.goalController != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.GET("/:id", r.goalController.Get)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
				goals.POST("/:id/contributions", r.goalController.AddContribution)
			}
		}

		if r.dashboardController != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/summary", r.dashboardController.GetSummary)
				dashboard.GET("/category-breakdown", r.dashboardController.GetCategoryBreakdown)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
