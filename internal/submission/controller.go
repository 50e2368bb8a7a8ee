package submission

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"claims-portal-api/internal/claim"
	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *SubmissionService
	LS                *logs.LogService
}

func claimCodeParam(c *gin.Context) (string, bool) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim code is required"})
		return "", false
	}
	return code, true
}

// GET /api/submissions/:code/draft
func (sc *SubmissionController) GetDraft(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}

	sub, form, recovered, err := sc.SubmissionService.GetByCode(code)
	if err != nil {
		if errors.Is(err, claim.ErrClaimNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
		return
	}

	if sub == nil {
		c.JSON(http.StatusOK, DraftResponse{Status: "none", Form: FormPayload{}})
		return
	}

	updatedAt := sub.UpdatedAt
	c.JSON(http.StatusOK, DraftResponse{
		Status:      sub.Status,
		Form:        form,
		Recovered:   recovered,
		SubmittedAt: sub.SubmittedAt,
		UpdatedAt:   &updatedAt,
	})
}

// PUT /api/submissions/:code/draft
func (sc *SubmissionController) SaveDraft(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}

	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := sc.SubmissionService.SaveDraft(code, req.Form)
	if err != nil {
		switch {
		case errors.Is(err, claim.ErrClaimNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadySubmitted):
			c.JSON(http.StatusConflict, gin.H{"reason": "already_submitted", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save your draft. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Draft saved",
		"updated_at": sub.UpdatedAt,
	})
}

// POST /api/submissions/:code/submit
func (sc *SubmissionController) Submit(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := sc.SubmissionService.Submit(code, req.Form)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Please fix the highlighted fields",
				"fields": verr.Fields,
			})
		case errors.Is(err, ErrAlreadySubmitted):
			c.JSON(http.StatusConflict, gin.H{"reason": "already_submitted", "error": err.Error()})
		case errors.Is(err, claim.ErrClaimNotFound),
			errors.Is(err, claim.ErrClaimInactive),
			errors.Is(err, claim.ErrClaimExpired):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit your claim. Please try again."})
		}
		return
	}

	entry := logs.ActivityLog{
		Level:     "INFO",
		Module:    "submission",
		Action:    "SUBMIT",
		Message:   fmt.Sprintf("Claim submitted for code %s", code),
		ClaimCode: &code,
		Tags:      sub.SelectedCategories,
	}
	if err := sc.LS.Log(entry, nil); err != nil {
		fmt.Printf("Failed to insert log: %v\n", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Claim submitted successfully",
		"submitted_at": sub.SubmittedAt,
	})
}
