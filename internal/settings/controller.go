package settings

import (
	"errors"
	"fmt"
	"net/http"

	"claims-portal-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsService *SettingsService
	LS              *logs.LogService
}

func actorID(c *gin.Context) *uint {
	v, ok := c.Get("userID")
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	id := uint(f)
	return &id
}

func writeSettingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoSchedule):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrScheduleInPast):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GET /api/claims-status
func (sc *SettingsController) Status(c *gin.Context) {
	enabled, message, err := sc.SettingsService.Current()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := StatusResponse{ClaimsEnabled: enabled}
	if !enabled {
		resp.ClosedMessage = message
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/admin/settings
func (sc *SettingsController) Get(c *gin.Context) {
	s, err := sc.SettingsService.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// PUT /api/admin/settings/toggle
func (sc *SettingsController) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled and version are required"})
		return
	}

	actor := actorID(c)
	var actorVal uint
	if actor != nil {
		actorVal = *actor
	}

	s, err := sc.SettingsService.SetEnabled(*req.Enabled, req.ClosedMessage, req.Version, actorVal)
	if err != nil {
		writeSettingsError(c, err)
		return
	}

	state := "closed"
	if s.ClaimsEnabled {
		state = "open"
	}
	sc.LS.Log(logs.ActivityLog{
		Level:   "INFO",
		Module:  "settings",
		ActorID: actor,
		Action:  "TOGGLE",
		Message: fmt.Sprintf("Claim filing set to %s", state),
	}, nil)

	c.JSON(http.StatusOK, s)
}

// PUT /api/admin/settings/schedule
func (sc *SettingsController) Schedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at, enabled and version are required"})
		return
	}

	actor := actorID(c)
	var actorVal uint
	if actor != nil {
		actorVal = *actor
	}

	s, err := sc.SettingsService.Schedule(req.At, *req.Enabled, req.Version, actorVal)
	if err != nil {
		writeSettingsError(c, err)
		return
	}

	state := "close"
	if *req.Enabled {
		state = "open"
	}
	sc.LS.Log(logs.ActivityLog{
		Level:   "INFO",
		Module:  "settings",
		ActorID: actor,
		Action:  "SCHEDULE",
		Message: fmt.Sprintf("Claim filing scheduled to %s at %s", state, req.At.Format("2006-01-02 15:04 MST")),
	}, nil)

	c.JSON(http.StatusOK, s)
}

// DELETE /api/admin/settings/schedule
func (sc *SettingsController) CancelSchedule(c *gin.Context) {
	version, err := parseVersionQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorID(c)
	var actorVal uint
	if actor != nil {
		actorVal = *actor
	}

	s, err := sc.SettingsService.CancelSchedule(version, actorVal)
	if err != nil {
		writeSettingsError(c, err)
		return
	}

	sc.LS.Log(logs.ActivityLog{
		Level:   "INFO",
		Module:  "settings",
		ActorID: actor,
		Action:  "SCHEDULE_CANCEL",
		Message: "Scheduled filing toggle cancelled",
	}, nil)

	c.JSON(http.StatusOK, s)
}

func parseVersionQuery(c *gin.Context) (int, error) {
	var q struct {
		Version int `form:"version" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, errors.New("version query parameter is required")
	}
	return q.Version, nil
}
