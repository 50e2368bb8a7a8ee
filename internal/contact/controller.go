package contact

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactService *ContactService
	LS             *logs.LogService
}

// POST /api/contact
func (cc *ContactController) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := cc.ContactService.Submit(req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entry := logs.ActivityLog{
		Level:   "INFO",
		Module:  "contact",
		Action:  "MESSAGE",
		Message: fmt.Sprintf("Message from %s", msg.Email),
	}
	if msg.ClaimCode != "" {
		entry.ClaimCode = &msg.ClaimCode
	}
	cc.LS.Log(entry, nil)

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks, we received your message."})
}

// POST /api/admin/contact/search
func (cc *ContactController) List(c *gin.Context) {
	var input ListMessagesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msgs, total, err := cc.ContactService.List(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": total})
}

// PATCH /api/admin/contact/:id/read
func (cc *ContactController) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	msg, err := cc.ContactService.MarkRead(uint(id))
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, msg)
}
