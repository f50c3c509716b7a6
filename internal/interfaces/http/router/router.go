package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medistore/backend/internal/infrastructure/auth"
	"github.com/medistore/backend/internal/infrastructure/logger"
	"github.com/medistore/backend/internal/interfaces/http/handler"
	"github.com/medistore/backend/internal/interfaces/http/middleware"
)

// Config carries everything the router needs to assemble the route tree
type Config struct {
	AuthHandler         *handler.AuthHandler
	ProductHandler      *handler.ProductHandler
	CartHandler         *handler.CartHandler
	OrderHandler        *handler.OrderHandler
	PrescriptionHandler *handler.PrescriptionHandler

	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	Logger       *zap.Logger
	CORS         middleware.CORSConfig
	MaxBodyBytes int64
}

// publicPaths are exact paths served without authentication
func publicPaths() []string {
	return []string{
		"/health",
		"/api/v1/health",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
		"/api/v1/auth/refresh",
	}
}

// Setup wires middleware and all API routes onto the engine
func Setup(engine *gin.Engine, cfg Config) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		SkipPaths:      publicPaths(),
		SkipPathPrefixes: []string{
			"/api/v1/products",
		},
		Logger: log,
	}))

	healthz := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	engine.GET("/health", healthz)

	api := engine.Group("/api/v1")
	api.GET("/health", healthz)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", cfg.AuthHandler.Register)
		authGroup.POST("/login", cfg.AuthHandler.Login)
		authGroup.POST("/refresh", cfg.AuthHandler.RefreshToken)
		authGroup.POST("/logout", cfg.AuthHandler.Logout)
		authGroup.GET("/me", cfg.AuthHandler.Me)
		authGroup.PUT("/profile", cfg.AuthHandler.UpdateProfile)
		authGroup.PUT("/password", cfg.AuthHandler.ChangePassword)
	}

	products := api.Group("/products")
	{
		products.GET("", cfg.ProductHandler.List)
		products.GET("/:id", cfg.ProductHandler.Get)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", cfg.CartHandler.Get)
		cart.GET("/stream", cfg.CartHandler.Stream)
		cart.POST("/items", cfg.CartHandler.AddItem)
		cart.PUT("/items/:id", cfg.CartHandler.SetQuantity)
		cart.DELETE("/items/:id", cfg.CartHandler.RemoveItem)
		cart.DELETE("", cfg.CartHandler.Clear)
		cart.POST("/checkout", cfg.CartHandler.Checkout)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", cfg.OrderHandler.ListMine)
		orders.GET("/:id", cfg.OrderHandler.Get)
	}

	prescriptions := api.Group("/prescriptions")
	{
		prescriptions.POST("", cfg.PrescriptionHandler.Upload)
		prescriptions.GET("", cfg.PrescriptionHandler.ListMine)
	}

	admin := api.Group("/admin", middleware.RequireAdmin())
	{
		admin.POST("/products", cfg.ProductHandler.Create)
		admin.PUT("/products/:id", cfg.ProductHandler.Update)
		admin.DELETE("/products/:id", cfg.ProductHandler.Delete)
		admin.GET("/orders", cfg.OrderHandler.ListAll)
		admin.GET("/orders/:id", cfg.OrderHandler.Get)
		admin.PUT("/orders/:id/status", cfg.OrderHandler.UpdateStatus)
		admin.GET("/prescriptions", cfg.PrescriptionHandler.ListAll)
		admin.PUT("/prescriptions/:id/status", cfg.PrescriptionHandler.UpdateStatus)
	}
}
