package main

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/handlers"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/middleware"
)

const (
	serviceName    = "qhoar-web"
	serviceVersion = "1.0.0"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	adminHandler   *handlers.AdminHandler
	portalHandler  *handlers.PortalHandler
	publicHandler  *handlers.PublicHandler
	authMiddleware gin.HandlerFunc
	loginLimiter   gin.HandlerFunc
}

// applyCORSMiddleware echoes allowed origins with credentials. "*" allows any origin.
func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	anyOrigin := slices.Contains(allowedOrigins, "*")
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (anyOrigin || slices.Contains(allowedOrigins, origin)) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
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

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.loginLimiter, d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/confirm", d.authHandler.Confirm)
			auth.POST("/resend-confirmation", d.loginLimiter, d.authHandler.ResendConfirmation)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Public profile pages
		v1.GET("/businesses/:id/profile", d.publicHandler.Profile)

		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireRole(string(entities.RoleAdmin)))
		{
			admin.GET("/stats", d.adminHandler.Stats)
			admin.GET("/businesses", d.adminHandler.ListBusinesses)
			admin.GET("/businesses/:id", d.adminHandler.GetBusiness)
			admin.PUT("/businesses/:id", d.adminHandler.UpdateBusiness)
			admin.POST("/businesses/:id/approve", d.adminHandler.ApproveBusiness)
			admin.POST("/businesses/:id/premium", d.adminHandler.SetPremium)

			admin.GET("/events", d.adminHandler.ListEvents)
			admin.POST("/events", d.adminHandler.CreateEvent)
			admin.DELETE("/events/:id", d.adminHandler.DeleteEvent)

			admin.POST("/uploads/poster", d.adminHandler.UploadPoster)
		}

		portal := v1.Group("/portal")
		portal.Use(d.authMiddleware, middleware.RequireRole(string(entities.RoleBusinessOwner)))
		{
			portal.GET("/businesses", d.portalHandler.ListBusinesses)

			business := portal.Group("/businesses/:id")
			business.GET("/design", d.portalHandler.GetDesign)
			business.PUT("/design", d.portalHandler.SaveDesign)
			business.GET("/preview", d.portalHandler.Preview)
			business.POST("/uploads/:kind", d.portalHandler.UploadImage)

			business.GET("/gallery", d.portalHandler.ListGallery)
			business.POST("/gallery", d.portalHandler.UploadGallery)
			business.POST("/gallery/reorder", d.portalHandler.ReorderGallery)
			business.PUT("/gallery/order", d.portalHandler.ReplaceGalleryOrder)
			business.PATCH("/gallery/:imageId", d.portalHandler.UpdateImage)
			business.DELETE("/gallery/:imageId", d.portalHandler.DeleteImage)
		}
	}
}
