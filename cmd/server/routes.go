package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"legal-city.backend/internal/interfaces/http/handlers"
	"legal-city.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	adminHandler   *handlers.AdminHandler
	oauthHandler   *handlers.OAuthHandler
	authMiddleware gin.HandlerFunc
	authLimiter    gin.HandlerFunc
	oauthLimiter   gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, frontendURL string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerServiceRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Legal City API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			// Registration and login (rate limited)
			auth.POST("/register-user", d.authLimiter, d.authHandler.RegisterUser)
			auth.POST("/register-lawyer", d.authLimiter, d.authHandler.RegisterLawyer)
			auth.POST("/login", d.authLimiter, d.authHandler.Login)

			// Email verification
			auth.POST("/verify-email", d.authHandler.VerifyEmail)

			// Password reset
			auth.POST("/forgot-password", d.authLimiter, d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)

			// Profile management
			auth.GET("/me", d.authMiddleware, d.profileHandler.GetMe)
			auth.PUT("/me", d.authMiddleware, d.profileHandler.UpdateMe)
			auth.DELETE("/me", d.authMiddleware, d.profileHandler.DeleteMe)

			// OAuth redirect endpoints
			auth.GET("/google", d.oauthLimiter, d.oauthHandler.Start("google"))
			auth.GET("/google/callback", d.oauthLimiter, d.oauthHandler.Callback("google"))
			auth.GET("/facebook", d.oauthLimiter, d.oauthHandler.Start("facebook"))
			auth.GET("/facebook/callback", d.oauthLimiter, d.oauthHandler.Callback("facebook"))
		}

		// Admin routes (authenticated + admin flag)
		admin := api.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/lawyers/unverified", d.adminHandler.ListUnverifiedLawyers)
			admin.PUT("/verify-lawyer/:id", d.adminHandler.VerifyLawyer)
		}
	}
}
