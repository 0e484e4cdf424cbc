package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

// StreakQueue schedules a background streak rebuild.
type StreakQueue interface {
	Enqueue(owner string, day time.Time) bool
}

type FitnessHandler struct {
	svc   *services.FitnessService
	queue StreakQueue
	now   Clock
}

// NewFitnessHandler accepts a nil queue; goal changes then only
// re-evaluate today.
func NewFitnessHandler(svc *services.FitnessService, queue StreakQueue, clock Clock) *FitnessHandler {
	return &FitnessHandler{
		svc:   svc,
		queue: queue,
		now:   clockOrSystem(clock),
	}
}

type quickUpdateRequest struct {
	Steps    int `json:"steps"`
	Calories int `json:"calories"`
	Minutes  int `json:"minutes"`
}

type addWorkoutRequest struct {
	Type      string `json:"type"`
	Minutes   int    `json:"minutes"`
	Intensity string `json:"intensity"`
}

type bmiRequest struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

func (h *FitnessHandler) RegisterRoutes(router *gin.RouterGroup) {
	fitness := router.Group("/fitness")
	{
		fitness.GET("/today", h.Today)
		fitness.POST("/quick-update", h.QuickUpdate)
		fitness.POST("/workouts", h.AddWorkout)
		fitness.DELETE("/workouts/:id", h.RemoveWorkout)
		fitness.POST("/water", h.AddWater)
		fitness.POST("/checklist/:item", h.ToggleChecklist)
		fitness.PUT("/goals", h.SetGoals)
		fitness.POST("/streak/rebuild", h.RebuildStreak)
		fitness.POST("/bmi", h.BMI)
	}
}

func (h *FitnessHandler) Today(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	day, err := h.svc.Today(c.Request.Context(), session.UserID, h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *FitnessHandler) QuickUpdate(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req quickUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	day, err := h.svc.QuickUpdate(c.Request.Context(), services.QuickUpdateInput{
		Owner:    session.UserID,
		Day:      h.now(),
		Steps:    req.Steps,
		Calories: req.Calories,
		Minutes:  req.Minutes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *FitnessHandler) AddWorkout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req addWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	day, err := h.svc.AddWorkout(c.Request.Context(), services.AddWorkoutInput{
		Owner:     session.UserID,
		Day:       h.now(),
		Type:      req.Type,
		Minutes:   req.Minutes,
		Intensity: req.Intensity,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, day)
}

func (h *FitnessHandler) RemoveWorkout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	day, err := h.svc.RemoveWorkout(c.Request.Context(), session.UserID, h.now(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *FitnessHandler) AddWater(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	day, err := h.svc.AddWater(c.Request.Context(), session.UserID, h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *FitnessHandler) ToggleChecklist(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	day, err := h.svc.ToggleChecklist(c.Request.Context(), session.UserID, h.now(), c.Param("item"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *FitnessHandler) SetGoals(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var goals domain.FitnessGoals
	if err := c.ShouldBindJSON(&goals); err != nil {
		badRequest(c, err)
		return
	}

	now := h.now()
	day, err := h.svc.SetGoals(c.Request.Context(), session.UserID, now, goals)
	if err != nil {
		handleError(c, err)
		return
	}

	// New goals change which past days qualify.
	if h.queue != nil {
		h.queue.Enqueue(session.UserID, now)
	}

	c.JSON(http.StatusOK, day)
}

func (h *FitnessHandler) RebuildStreak(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	streak, err := h.svc.RebuildStreak(c.Request.Context(), session.UserID, h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, streak)
}

func (h *FitnessHandler) BMI(c *gin.Context) {
	var req bmiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.svc.BMI(req.HeightCm, req.WeightKg)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
