package document

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"claims-portal-api/internal/claim"
	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	DocumentService *DocumentService
	LS              *logs.LogService
}

func claimCodeParam(c *gin.Context) (string, bool) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim code is required"})
		return "", false
	}
	return code, true
}

func docIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return 0, false
	}
	return uint(id), true
}

func writeClaimError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, claim.ErrClaimNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, claim.ErrClaimInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, claim.ErrClaimExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

// POST /api/documents/:code
func (dc *DocumentController) Upload(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(c.PostForm("category"))
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	doc, err := dc.DocumentService.Upload(code, category, fh)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrFileTypeBlocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			if writeClaimError(c, err) {
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	dc.LS.Log(logs.ActivityLog{
		Level:     "INFO",
		Module:    "document",
		Action:    "UPLOAD",
		Message:   fmt.Sprintf("Uploaded %q (%d bytes) for category %s", doc.OriginalName, doc.SizeBytes, doc.Category),
		ClaimCode: &doc.Code,
	}, nil)

	c.JSON(http.StatusCreated, gin.H{"document": DocumentView{
		ID:           doc.ID,
		Category:     doc.Category,
		OriginalName: doc.OriginalName,
		ContentType:  doc.ContentType,
		SizeBytes:    doc.SizeBytes,
		CreatedAt:    doc.CreatedAt,
	}})
}

// GET /api/documents/:code
func (dc *DocumentController) List(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}

	grouped, err := dc.DocumentService.ListByCode(code)
	if err != nil {
		if writeClaimError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": grouped})
}

// GET /api/documents/:code/:id/url
func (dc *DocumentController) SignedURL(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}
	id, ok := docIDParam(c)
	if !ok {
		return
	}

	resp, err := dc.DocumentService.SignedURL(code, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DELETE /api/documents/:code/:id
func (dc *DocumentController) Delete(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}
	id, ok := docIDParam(c)
	if !ok {
		return
	}

	doc, err := dc.DocumentService.SoftDelete(code, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.LS.Log(logs.ActivityLog{
		Level:     "INFO",
		Module:    "document",
		Action:    "DELETE",
		Message:   fmt.Sprintf("Removed %q from category %s", doc.OriginalName, doc.Category),
		ClaimCode: &doc.Code,
	}, nil)

	c.JSON(http.StatusOK, gin.H{"message": "document removed"})
}

// DELETE /api/admin/documents/:code/purge
func (dc *DocumentController) Purge(c *gin.Context) {
	code, ok := claimCodeParam(c)
	if !ok {
		return
	}

	removed, err := dc.DocumentService.PurgeCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.LS.Log(logs.ActivityLog{
		Level:     "WARN",
		Module:    "document",
		Action:    "PURGE",
		Message:   fmt.Sprintf("Purged %d document(s) and storage folder", removed),
		ClaimCode: &code,
	}, nil)

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// POST /api/admin/documents/search
func (dc *DocumentController) AdminList(c *gin.Context) {
	var input AdminListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rows, total, err := dc.DocumentService.AdminList(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": rows, "total": total})
}
