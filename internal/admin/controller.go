package admin

import (
	"net/http"

	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *AdminService
	LS           *logs.LogService
}

// GET /api/admin/dashboard
func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.AdminService.DashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recent, err := ac.LS.RecentActivity(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "recent_activity": recent})
}

// GET /api/admin/export
func (ac *AdminController) Export(c *gin.Context) {
	var input ExportInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid export query"})
		return
	}

	contentType, filename, out, err := ac.AdminService.ExportSubmissions(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if v, ok := c.Get("userID"); ok {
		if f, ok := v.(float64); ok {
			id := uint(f)
			ac.LS.Log(logs.ActivityLog{
				Level:   "INFO",
				Module:  "admin",
				ActorID: &id,
				Action:  "EXPORT",
				Message: "Exported submissions as " + filename,
			}, nil)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, out)
}
