package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/server/http/handlers"
	"github.com/vdeep/craftmart/internal/server/http/middleware"
)

// HealthChecker reports backing store availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, cfg *config.Config, health HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade, cfg.VAPIDPublicKey, cfg.AdminPassword)

	started := time.Now()
	engine.GET("/health", func(c *gin.Context) {
		if err := health.HealthCheck(c.Request.Context()); err != nil {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).String(),
		})
	})

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/login", authHandler.Login)

	cart := auth.Group("/cart")
	cart.Use(middleware.AuthRequired(facade))
	cart.POST("", cartHandler.Add)
	cart.GET("", cartHandler.List)
	cart.DELETE("/:productID", cartHandler.Remove)

	products := api.Group("/products")
	products.GET("", catalogHandler.List)
	products.GET("/:id", catalogHandler.Get)
	products.POST("/:id/reviews", middleware.AuthRequired(facade), catalogHandler.AddReview)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.List)
	orders.POST("/download", orderHandler.Download)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(cfg.AdminPassword))
	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/approve", adminHandler.Approve)
	admin.POST("/orders/reject", adminHandler.Reject)
	admin.POST("/products", adminHandler.CreateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)

	// Subscribe authenticates in the handler: admin password or bearer token.
	notifications := api.Group("/notifications")
	notifications.GET("/config", notificationHandler.Config)
	notifications.POST("/subscribe", notificationHandler.Subscribe)

	return engine
}
