package assistant

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, assistantService *AssistantService) {
	assistantController := &AssistantController{AssistantService: assistantService}

	r.POST("/api/assistant/ask", assistantController.Ask)
}
