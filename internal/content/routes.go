package content

import (
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, contentService *ContentService, logService *logs.LogService) {
	contentController := &ContentController{ContentService: contentService, LS: logService}

	r.GET("/api/content", contentController.PublicContent)
	r.GET("/api/faqs", contentController.PublicFAQs)
	r.GET("/api/important-dates", contentController.PublicDates)

	// editors manage copy too
	adminGroup := r.Group("/api/admin/content")
	adminGroup.Use(middlewares.AuthMiddleware())
	adminGroup.Use(middlewares.RequireRole("owner", "admin", "editor"))
	{
		adminGroup.GET("", contentController.AdminContent)

		adminGroup.POST("/sections", contentController.CreateSection)
		adminGroup.PUT("/sections/:id", contentController.UpdateSection)
		adminGroup.DELETE("/sections/:id", contentController.DeleteSection)

		adminGroup.POST("/faqs", contentController.CreateFAQ)
		adminGroup.PUT("/faqs/:id", contentController.UpdateFAQ)
		adminGroup.DELETE("/faqs/:id", contentController.DeleteFAQ)

		adminGroup.POST("/dates", contentController.CreateDate)
		adminGroup.PUT("/dates/:id", contentController.UpdateDate)
		adminGroup.DELETE("/dates/:id", contentController.DeleteDate)
	}
}
