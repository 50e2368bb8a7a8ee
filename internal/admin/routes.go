package admin

import (
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, adminService *AdminService, logService *logs.LogService) {
	adminController := &AdminController{AdminService: adminService, LS: logService}

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middlewares.AuthMiddleware())
	adminGroup.Use(middlewares.RequireRole("owner", "admin"))
	{
		adminGroup.GET("/dashboard", adminController.Dashboard)
		adminGroup.GET("/export", adminController.Export)
	}
}
