package claim

import (
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, claimService *ClaimService, filing FilingStatus, logService *logs.LogService) {
	claimController := &ClaimController{ClaimService: claimService, Filing: filing, LS: logService}

	public := r.Group("/api/claims")
	{
		public.POST("/validate", claimController.ValidateCode)
	}

	adminGroup := r.Group("/api/admin/claims")
	adminGroup.Use(middlewares.AuthMiddleware())
	adminGroup.Use(middlewares.RequireRole("owner", "admin"))
	{
		adminGroup.POST("", claimController.CreateClaims)
		adminGroup.GET("", claimController.ListClaims)
		adminGroup.PATCH("/:id/deactivate", claimController.DeactivateClaim)
	}
}
