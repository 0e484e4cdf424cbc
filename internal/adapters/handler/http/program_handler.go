package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

type ProgramHandler struct {
	svc *services.ProgramService
}

func NewProgramHandler(svc *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{svc: svc}
}

type programRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Capacity    int    `json:"capacity"`
	StartDate   string `json:"start_date"`
	Description string `json:"description"`
}

func (r programRequest) input() services.ProgramInput {
	return services.ProgramInput{
		Title:       r.Title,
		Category:    r.Category,
		Capacity:    r.Capacity,
		StartDate:   r.StartDate,
		Description: r.Description,
	}
}

func (h *ProgramHandler) RegisterRoutes(router *gin.RouterGroup) {
	programs := router.Group("/programs")
	{
		programs.GET("", h.List)
		programs.GET("/preferences", h.Preferences)
		programs.POST("/:id/favorite", h.ToggleFavorite)
		programs.POST("/:id/enroll", h.ToggleEnrolled)
	}
}

func (h *ProgramHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	programs := router.Group("/programs")
	{
		programs.POST("", h.Create)
		programs.PUT("/:id", h.Update)
		programs.DELETE("/:id", h.Delete)
		programs.GET("/histogram", h.Histogram)
	}
}

func (h *ProgramHandler) List(c *gin.Context) {
	programs, err := h.svc.List(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, programs)
}

func (h *ProgramHandler) Create(c *gin.Context) {
	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	program, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, program)
}

func (h *ProgramHandler) Update(c *gin.Context) {
	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	program, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProgramHandler) Histogram(c *gin.Context) {
	counts, err := h.svc.Histogram(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

func (h *ProgramHandler) ToggleFavorite(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	result, err := h.svc.ToggleFavorite(c.Request.Context(), session.UserID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProgramHandler) ToggleEnrolled(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	result, err := h.svc.ToggleEnrolled(c.Request.Context(), session.UserID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProgramHandler) Preferences(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	view, err := h.svc.Preferences(c.Request.Context(), session.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
