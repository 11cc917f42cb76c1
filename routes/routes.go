package routes

import (
	"net/http"
	"time"

	"talentshout/handlers"
	"talentshout/middleware"
	"talentshout/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers registration and login endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware())
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.MeHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("", hb.ListBookingsHandler)
		api.POST("", hb.CreateBookingHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("/:id/payments", hb.PayBookingHandler)
		api.POST("/:id/acknowledge", hb.AcknowledgeBookingHandler)
		api.POST("/:id/deliver", hb.DeliverBookingHandler)
		api.POST("/:id/rate", hb.RateBookingHandler)
	}
}

// RegisterTalentRoutes registers application and profile endpoints.
func RegisterTalentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	apps := r.Group("/api/talent-applications")
	{
		apps.Use(middleware.AuthMiddleware())
		apps.POST("", hb.ApplyHandler)
		apps.GET("/me", hb.MyApplicationHandler)
		apps.GET("/:id", hb.GetApplicationHandler)
	}

	talents := r.Group("/api/talents")
	{
		// Public profile browsing.
		talents.GET("/:id", hb.GetTalentProfileHandler)

		protected := talents.Group("")
		protected.Use(middleware.AuthMiddleware())
		protected.PATCH("/me/settings", hb.UpdateTalentSettingsHandler)
	}
}

// RegisterDashboardRoutes registers the role-scoped dashboard endpoint.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("", hb.DashboardHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		api.POST("/bookings/:id/cancel", hb.AdminCancelBookingHandler)
		api.POST("/bookings/:id/refund", hb.AdminRefundBookingHandler)
		api.POST("/bookings/:id/complete", hb.AdminCompleteBookingHandler)
		api.GET("/dashboard", hb.AdminDashboardHandler)
		api.GET("/talent-applications", hb.ReviewQueueHandler)
		api.PATCH("/talent-applications/:id/status", hb.ReviewApplicationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm TalentShout",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAccountRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterTalentRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
