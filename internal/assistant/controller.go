package assistant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	AssistantService *AssistantService
}

type askRequest struct {
	Question string `json:"question"`
}

// POST /api/assistant/ask
func (ac *AssistantController) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	answer, err := ac.AssistantService.Ask(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
