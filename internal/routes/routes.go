package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/mailer"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/session"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, sessions session.Store, mail mailer.Mailer) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, mail)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		// Logout is public so it stays idempotent when no session exists
		public.POST("/logout", authHandler.Logout)
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.SessionMiddleware(sessions, cfg.SessionCookieName))
	{
		private.GET("/user", authHandler.CurrentUser)

		private.GET("/doctors", userHandler.GetDoctors)

		private.GET("/appointments", appointmentHandler.GetAppointments)
		private.POST("/appointments", appointmentHandler.CreateAppointment)

		// Medical records: doctors write, patients read their own
		private.POST("/records", middleware.RoleMiddleware(models.RoleDoctor), medicalRecordHandler.CreateMedicalRecord)
		private.GET("/records/:patientId", medicalRecordHandler.GetRecordsForPatient)

		// Weekly availability, doctor-only
		scheduleRoutes := private.Group("/schedule")
		scheduleRoutes.Use(middleware.RoleMiddleware(models.RoleDoctor))
		{
			scheduleRoutes.GET("", scheduleHandler.GetSchedule)
			scheduleRoutes.POST("", scheduleHandler.CreateSchedule)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
