package logs

import (
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, logService *LogService) {
	logController := &LogController{LogService: logService}

	logGroup := r.Group("/api/admin/logs")
	logGroup.Use(middlewares.AuthMiddleware())
	logGroup.Use(middlewares.RequireRole("owner", "admin"))
	{
		logGroup.POST("/search", logController.GetLogs)
	}
}
