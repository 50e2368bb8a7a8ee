package claim

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type ClaimController struct {
	ClaimService ClaimServicePort
	Filing       FilingStatus
	LS           *logs.LogService
}

func gateReason(err error) (int, string) {
	switch {
	case errors.Is(err, ErrClaimUsed):
		return http.StatusConflict, "used"
	case errors.Is(err, ErrClaimInactive):
		return http.StatusForbidden, "inactive"
	case errors.Is(err, ErrClaimExpired):
		return http.StatusGone, "expired"
	case errors.Is(err, ErrClaimNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "error"
	}
}

// POST /api/claims/validate
func (cc *ClaimController) ValidateCode(c *gin.Context) {
	var req ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cc.Filing != nil {
		enabled, message, err := cc.Filing.Current()
		if err == nil && !enabled {
			if message == "" {
				message = "Claim filing is temporarily unavailable. Please check back later."
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"reason": "disabled", "error": message})
			return
		}
	}

	cl, err := cc.ClaimService.ValidateCode(req.Code)
	if err != nil {
		status, reason := gateReason(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Something went wrong. Please try again."})
			return
		}
		c.JSON(status, gin.H{"reason": reason, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"claim": gin.H{
			"code":        cl.Code,
			"title":       cl.Title,
			"description": cl.Description,
		},
	})
}

// POST /api/admin/claims
func (cc *ClaimController) CreateClaims(c *gin.Context) {
	var req CreateClaimsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at must be RFC3339"})
			return
		}
		expiresAt = &t
	}

	actorID := uint(c.GetFloat64("userID"))

	claims, err := cc.ClaimService.CreateClaims(req.Count, req.Title, req.Description, expiresAt, actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entry := logs.ActivityLog{
		Level:   "INFO",
		Module:  "claim",
		Action:  "CREATE_CLAIMS",
		Message: fmt.Sprintf("Generated %d claim codes", len(claims)),
		ActorID: &actorID,
	}
	if err := cc.LS.Log(entry, map[string]any{"count": len(claims)}); err != nil {
		fmt.Printf("Failed to insert log: %v\n", err)
	}

	c.JSON(http.StatusCreated, gin.H{"claims": claims})
}

// GET /api/admin/claims
func (cc *ClaimController) ListClaims(c *gin.Context) {
	var input ListClaimsInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, total, err := cc.ClaimService.ListClaims(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows, "total": total})
}

// PATCH /api/admin/claims/:id/deactivate
func (cc *ClaimController) DeactivateClaim(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cl, err := cc.ClaimService.DeactivateClaim(uint(id))
	if err != nil {
		if errors.Is(err, ErrClaimNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	actorID := uint(c.GetFloat64("userID"))
	entry := logs.ActivityLog{
		Level:     "INFO",
		Module:    "claim",
		Action:    "DEACTIVATE",
		Message:   fmt.Sprintf("Claim code %s deactivated", cl.Code),
		ActorID:   &actorID,
		ClaimCode: &cl.Code,
	}
	if err := cc.LS.Log(entry, nil); err != nil {
		fmt.Printf("Failed to insert log: %v\n", err)
	}

	c.JSON(http.StatusOK, gin.H{"claim": cl})
}
