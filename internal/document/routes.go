package document

import (
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, documentService *DocumentService, logService *logs.LogService) {
	documentController := &DocumentController{DocumentService: documentService, LS: logService}

	public := r.Group("/api/documents")
	{
		public.POST("/:code", documentController.Upload)
		public.GET("/:code", documentController.List)
		public.GET("/:code/:id/url", documentController.SignedURL)
		public.DELETE("/:code/:id", documentController.Delete)
	}

	adminGroup := r.Group("/api/admin/documents")
	adminGroup.Use(middlewares.AuthMiddleware())
	adminGroup.Use(middlewares.RequireRole("owner", "admin"))
	{
		adminGroup.POST("/search", documentController.AdminList)
		adminGroup.DELETE("/:code/purge", documentController.Purge)
	}
}
