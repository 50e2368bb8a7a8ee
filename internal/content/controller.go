package content

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *ContentService
	LS             *logs.LogService
}

func actorID(c *gin.Context) (*uint, uint) {
	v, ok := c.Get("userID")
	if !ok {
		return nil, 0
	}
	f, ok := v.(float64)
	if !ok {
		return nil, 0
	}
	id := uint(f)
	return &id, id
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func writeContentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrDuplicateSlug):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (cc *ContentController) logChange(c *gin.Context, action, what string) {
	actor, _ := actorID(c)
	cc.LS.Log(logs.ActivityLog{
		Level:   "INFO",
		Module:  "content",
		ActorID: actor,
		Action:  action,
		Message: what,
	}, nil)
}

// GET /api/content
func (cc *ContentController) PublicContent(c *gin.Context) {
	sections, err := cc.ContentService.VisibleSections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	faqs, err := cc.ContentService.VisibleFAQs("")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	dates, err := cc.ContentService.VisibleDates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sections":        sections,
		"faqs":            faqs,
		"important_dates": dates,
	})
}

// GET /api/faqs
func (cc *ContentController) PublicFAQs(c *gin.Context) {
	faqs, err := cc.ContentService.VisibleFAQs(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

// GET /api/important-dates
func (cc *ContentController) PublicDates(c *gin.Context) {
	dates, err := cc.ContentService.VisibleDates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"important_dates": dates})
}

// GET /api/admin/content
func (cc *ContentController) AdminContent(c *gin.Context) {
	sections, err := cc.ContentService.AllSections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	faqs, err := cc.ContentService.AllFAQs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	dates, err := cc.ContentService.AllDates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sections":        sections,
		"faqs":            faqs,
		"important_dates": dates,
	})
}

// POST /api/admin/content/sections
func (cc *ContentController) CreateSection(c *gin.Context) {
	var input SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, actor := actorID(c)
	section, err := cc.ContentService.CreateSection(input, actor)
	if err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "CREATE", fmt.Sprintf("Created section %q", section.Slug))
	c.JSON(http.StatusCreated, section)
}

// PUT /api/admin/content/sections/:id
func (cc *ContentController) UpdateSection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, actor := actorID(c)
	section, err := cc.ContentService.UpdateSection(id, input, actor)
	if err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "UPDATE", fmt.Sprintf("Updated section %q", section.Slug))
	c.JSON(http.StatusOK, section)
}

// DELETE /api/admin/content/sections/:id
func (cc *ContentController) DeleteSection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := cc.ContentService.DeleteSection(id); err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "DELETE", fmt.Sprintf("Deleted section #%d", id))
	c.JSON(http.StatusOK, gin.H{"message": "section deleted"})
}

// POST /api/admin/content/faqs
func (cc *ContentController) CreateFAQ(c *gin.Context) {
	var input FAQInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, actor := actorID(c)
	faq, err := cc.ContentService.CreateFAQ(input, actor)
	if err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "CREATE", fmt.Sprintf("Created FAQ #%d", faq.ID))
	c.JSON(http.StatusCreated, faq)
}

// PUT /api/admin/content/faqs/:id
func (cc *ContentController) UpdateFAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input FAQInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, actor := actorID(c)
	faq, err := cc.ContentService.UpdateFAQ(id, input, actor)
	if err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "UPDATE", fmt.Sprintf("Updated FAQ #%d", faq.ID))
	c.JSON(http.StatusOK, faq)
}

// DELETE /api/admin/content/faqs/:id
func (cc *ContentController) DeleteFAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := cc.ContentService.DeleteFAQ(id); err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "DELETE", fmt.Sprintf("Deleted FAQ #%d", id))
	c.JSON(http.StatusOK, gin.H{"message": "faq deleted"})
}

// POST /api/admin/content/dates
func (cc *ContentController) CreateDate(c *gin.Context) {
	var input DateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, actor := actorID(c)
	d, err := cc.ContentService.CreateDate(input, actor)
	if err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "CREATE", fmt.Sprintf("Created important date %q", d.Label))
	c.JSON(http.StatusCreated, d)
}

// PUT /api/admin/content/dates/:id
func (cc *ContentController) UpdateDate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input DateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, actor := actorID(c)
	d, err := cc.ContentService.UpdateDate(id, input, actor)
	if err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "UPDATE", fmt.Sprintf("Updated important date %q", d.Label))
	c.JSON(http.StatusOK, d)
}

// DELETE /api/admin/content/dates/:id
func (cc *ContentController) DeleteDate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := cc.ContentService.DeleteDate(id); err != nil {
		writeContentError(c, err)
		return
	}

	cc.logChange(c, "DELETE", fmt.Sprintf("Deleted important date #%d", id))
	c.JSON(http.StatusOK, gin.H{"message": "date deleted"})
}
