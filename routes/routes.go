package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wayfarer-app/wayfarer-backend/config"
	"github.com/wayfarer-app/wayfarer-backend/database"
	"github.com/wayfarer-app/wayfarer-backend/internal/auditlog"
	"github.com/wayfarer-app/wayfarer-backend/internal/auth"
	"github.com/wayfarer-app/wayfarer-backend/internal/calendarlink"
	"github.com/wayfarer-app/wayfarer-backend/internal/geozone"
	"github.com/wayfarer-app/wayfarer-backend/internal/itinerary"
	"github.com/wayfarer-app/wayfarer-backend/internal/notification"
	"github.com/wayfarer-app/wayfarer-backend/internal/reports"
	"github.com/wayfarer-app/wayfarer-backend/internal/trip"
	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
	"github.com/wayfarer-app/wayfarer-backend/middleware"
)

// Services holds the wired service graph so main can reach pieces that
// outlive a request (the notification consumer).
type Services struct {
	Auth          auth.Service
	Notifications notification.Service
}

func Setup(r *gin.Engine, cfg *config.Config) *Services {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Trips ==========
	tripRepo := trip.NewRepository(database.DB)
	tripSvc := trip.NewService(tripRepo, auditSvc, notifSvc)
	tripHandler := trip.NewHandler(tripSvc)

	// ========== Trip Events ==========
	zoneClient := geozone.NewClient(cfg)
	eventRepo := tripevent.NewRepository(database.DB)
	eventSvc := tripevent.NewService(eventRepo, auditSvc, tripSvc, zoneClient)
	eventHandler := tripevent.NewHandler(eventSvc)

	// ========== Itinerary ==========
	itinerarySvc := itinerary.NewService(eventRepo, tripSvc, tripSvc)
	itineraryHandler := itinerary.NewHandler(itinerarySvc)

	// ========== Calendar Links ==========
	calendarHandler := calendarlink.NewHandler(eventRepo, tripSvc)

	// ========== Reports ==========
	reportSvc := reports.NewService(itinerarySvc, reports.NewItineraryExporter(), auditSvc)
	reportHandler := reports.NewHandler(reportSvc)

	// ========== Public ==========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	// Guest itinerary view via share token, no auth required
	api.GET("/shared/:token", itineraryHandler.GetSharedItinerary)

	// ========== Protected ==========
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	tripRoutes := protected.Group("/trips")
	{
		tripRoutes.POST("", tripHandler.CreateTrip)
		tripRoutes.GET("", tripHandler.ListTrips)
		tripRoutes.GET("/:id", tripHandler.GetTrip)
		tripRoutes.PUT("/:id", tripHandler.UpdateTrip)
		tripRoutes.DELETE("/:id", tripHandler.DeleteTrip)

		tripRoutes.POST("/:id/share", tripHandler.ShareTrip)
		tripRoutes.GET("/:id/shares", tripHandler.ListShares)
		tripRoutes.DELETE("/:id/shares/:tokenID", tripHandler.RevokeShare)

		tripRoutes.POST("/:id/events", eventHandler.CreateEvent)
		tripRoutes.GET("/:id/events", eventHandler.ListEvents)
		tripRoutes.GET("/:id/events/:eventID", eventHandler.GetEvent)
		tripRoutes.PUT("/:id/events/:eventID", eventHandler.UpdateEvent)
		tripRoutes.DELETE("/:id/events/:eventID", eventHandler.DeleteEvent)
		tripRoutes.GET("/:id/events/:eventID/calendar-link", calendarHandler.GetCalendarLink)

		tripRoutes.GET("/:id/itinerary", itineraryHandler.GetItinerary)
		tripRoutes.GET("/:id/export", reportHandler.ExportItinerary)
	}

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("", notifHandler.ListInApp)
		notificationRoutes.PATCH("/:id/read", notifHandler.MarkAsRead)
	}

	// ========== Audit Logs (Admin Only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.AdminOnly())
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	return &Services{Auth: authSvc, Notifications: notifSvc}
}
