package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "tradejournal/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler  *AuthHandler
	UserHandler  *UserHandler
	TradeHandler *TradeHandler
	AdminHandler *AdminHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "tradejournal-api",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
	}

	// Session-bound routes
	api.GET("/pairs", config.TradeHandler.ListPairs, custommiddleware.SessionMiddleware)
	api.GET("/market/price", config.TradeHandler.GetMarketPrice, custommiddleware.SessionMiddleware)

	user := api.Group("/user", custommiddleware.SessionMiddleware)
	{
		user.GET("/me", config.UserHandler.GetMe)
		user.POST("/password", config.UserHandler.ChangePassword)
	}

	trades := api.Group("/trades", custommiddleware.SessionMiddleware)
	{
		trades.GET("", config.TradeHandler.ListTrades)
		trades.POST("", config.TradeHandler.CreateTrade)
		trades.PUT("/:id", config.TradeHandler.UpdateTrade)
		trades.DELETE("/:id", config.TradeHandler.DeleteTrade)
	}

	// Admin routes (session + admin role)
	admin := api.Group("/admin", custommiddleware.SessionMiddleware, custommiddleware.AdminMiddleware)
	{
		admin.GET("/users", config.AdminHandler.ListUsers)
		admin.POST("/users", config.AdminHandler.CreateUser)
		admin.PUT("/users/:id/status", config.AdminHandler.SetUserStatus)
		admin.POST("/users/:id/password/reset", config.AdminHandler.ResetUserPassword)
		admin.GET("/trades", config.AdminHandler.ListAllTrades)
		admin.GET("/store", config.AdminHandler.GetStoreStatus)
		admin.PUT("/store", config.AdminHandler.SetStoreStatus)
		admin.GET("/stats", config.AdminHandler.GetStats)
	}
}
