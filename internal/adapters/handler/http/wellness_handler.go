package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

type WellnessHandler struct {
	svc *services.WellnessService
	now Clock
}

func NewWellnessHandler(svc *services.WellnessService, clock Clock) *WellnessHandler {
	return &WellnessHandler{
		svc: svc,
		now: clockOrSystem(clock),
	}
}

type addMoodRequest struct {
	Day               string  `json:"day"`
	Date              string  `json:"date"`
	Mood              int     `json:"mood"`
	SleepHours        float64 `json:"sleep_hours"`
	MeditationMinutes float64 `json:"meditation_minutes"`
	Note              string  `json:"note"`
}

func (h *WellnessHandler) RegisterRoutes(router *gin.RouterGroup) {
	wellness := router.Group("/wellness")
	{
		wellness.GET("/entries", h.List)
		wellness.POST("/entries", h.Add)
		wellness.GET("/summary", h.Summary)
	}
}

func (h *WellnessHandler) List(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	entries, err := h.svc.Entries(c.Request.Context(), session.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Add defaults the date and weekday label to today when the client
// sends neither.
func (h *WellnessHandler) Add(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req addMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	now := h.now()
	if req.Date == "" {
		req.Date = now.Format("2006-01-02")
	}
	if req.Day == "" {
		req.Day = now.Weekday().String()[:3]
	}

	entry, err := h.svc.AddEntry(c.Request.Context(), services.AddMoodInput{
		Owner:             session.UserID,
		Day:               req.Day,
		Date:              req.Date,
		Mood:              req.Mood,
		SleepHours:        req.SleepHours,
		MeditationMinutes: req.MeditationMinutes,
		Note:              req.Note,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *WellnessHandler) Summary(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), session.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
