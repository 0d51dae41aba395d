package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wardrobe.backend/internal/interfaces/http/handlers"
	"wardrobe.backend/internal/interfaces/http/middleware"
	"wardrobe.backend/pkg/metrics"
)

const (
	serviceName    = "wardrobe-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	productHandler   *handlers.ProductHandler
	inventoryHandler *handlers.InventoryHandler
	profileHandler   *handlers.ProfileHandler
	adminHandler     *handlers.AdminHandler
	sessionAuth      gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, origins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, m *metrics.Metrics) {
	r.GET("/metrics", gin.WrapH(m.Handler()))
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register/init", d.authHandler.RegisterInit)
			auth.POST("/register/verify", d.authHandler.RegisterVerify)
			auth.POST("/register/complete", d.authHandler.RegisterComplete)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.sessionAuth, d.authHandler.Logout)
			auth.GET("/me", d.sessionAuth, d.authHandler.GetMe)
			auth.POST("/password/forgot", d.authHandler.ForgotPassword)
			auth.POST("/password/reset", d.authHandler.ResetPassword)
		}

		// Catalog (public)
		products := api.Group("/products")
		{
			products.GET("", d.productHandler.ListProducts)
			products.GET("/featured", d.productHandler.ListFeatured)
			products.GET("/category/:category", d.productHandler.ListByCategory)
			products.GET("/:id", d.productHandler.GetProduct)
		}

		inventory := api.Group("/inventory")
		inventory.Use(d.sessionAuth, middleware.RequireAdmin())
		{
			inventory.PUT("/stock/:productId", d.inventoryHandler.AdjustStock)
			inventory.GET("/low-stock", d.inventoryHandler.GetLowStock)
			inventory.GET("/logs", d.inventoryHandler.GetLogs)
		}

		profile := api.Group("/profile")
		profile.Use(d.sessionAuth)
		{
			profile.GET("", d.profileHandler.GetProfile)
			profile.PUT("", d.profileHandler.UpdateProfile)
			profile.POST("/password", d.profileHandler.ChangePassword)
			profile.GET("/preferences", d.profileHandler.GetPreferences)
			profile.PUT("/preferences", d.profileHandler.UpdatePreferences)
			profile.GET("/addresses", d.profileHandler.ListAddresses)
			profile.POST("/addresses", d.profileHandler.CreateAddress)
			profile.PUT("/addresses/:id", d.profileHandler.UpdateAddress)
			profile.DELETE("/addresses/:id", d.profileHandler.DeleteAddress)
		}

		admin := api.Group("/admin")
		admin.Use(d.sessionAuth, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.POST("/users/:id/toggle-suspension", d.adminHandler.ToggleSuspension)
			admin.POST("/users/:id/toggle-admin", d.adminHandler.ToggleAdmin)

			admin.POST("/products", d.productHandler.CreateProduct)
			admin.PUT("/products/:id", d.productHandler.UpdateProduct)
			admin.DELETE("/products/:id", d.productHandler.DeleteProduct)
		}
	}
}
