package settings

import (
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, settingsService *SettingsService, logService *logs.LogService) {
	settingsController := &SettingsController{SettingsService: settingsService, LS: logService}

	r.GET("/api/claims-status", settingsController.Status)

	adminGroup := r.Group("/api/admin/settings")
	adminGroup.Use(middlewares.AuthMiddleware())
	adminGroup.Use(middlewares.RequireRole("owner", "admin"))
	{
		adminGroup.GET("", settingsController.Get)
		adminGroup.PUT("/toggle", settingsController.Toggle)
		adminGroup.PUT("/schedule", settingsController.Schedule)
		adminGroup.DELETE("/schedule", settingsController.CancelSchedule)
	}
}
