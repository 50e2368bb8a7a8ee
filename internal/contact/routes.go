package contact

import (
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, contactService *ContactService, logService *logs.LogService) {
	contactController := &ContactController{ContactService: contactService, LS: logService}

	r.POST("/api/contact", contactController.Submit)

	adminGroup := r.Group("/api/admin/contact")
	adminGroup.Use(middlewares.AuthMiddleware())
	adminGroup.Use(middlewares.RequireRole("owner", "admin"))
	{
		adminGroup.POST("/search", contactController.List)
		adminGroup.PATCH("/:id/read", contactController.MarkRead)
	}
}
