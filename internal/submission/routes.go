package submission

import (
	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

// Public routes: possession of a valid claim code is the capability.
func RegisterRoutes(r *gin.Engine, submissionService *SubmissionService, logService *logs.LogService) {
	submissionController := &SubmissionController{
		SubmissionService: submissionService,
		LS:                logService,
	}

	group := r.Group("/api/submissions")
	{
		group.GET("/:code/draft", submissionController.GetDraft)
		group.PUT("/:code/draft", submissionController.SaveDraft)
		group.POST("/:code/submit", submissionController.Submit)
	}
}
