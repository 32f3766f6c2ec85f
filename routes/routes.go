package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crimewatch/config"
	"crimewatch/controllers"
	"crimewatch/middleware"
	"crimewatch/services"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	reports := services.NewReportService(db)
	transitions := services.NewTransitionService(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "crimewatch",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Stored attachments
	r.Static("/uploads", cfg.UploadDir)

	// Public routes (no authentication required)
	public := r.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", controllers.Login(db, cfg))
			auth.POST("/register", controllers.Register(db))
		}
	}

	// Protected routes (authentication required)
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/reports", controllers.CreateReport(reports, cfg.UploadDir))
		protected.GET("/reports", controllers.MyReports(reports))

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/reports", controllers.AdminReports(reports))
			admin.GET("/reports/export", controllers.ExportReports(reports))
			admin.PUT("/reports/:id/status", controllers.UpdateStatus(transitions))
			admin.GET("/reports/:id/audits", controllers.ReportAudits(transitions))
		}
	}
}
