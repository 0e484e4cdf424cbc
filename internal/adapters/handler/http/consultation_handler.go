package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

type ConsultationHandler struct {
	svc *services.ConsultationService
	now Clock
}

func NewConsultationHandler(svc *services.ConsultationService, clock Clock) *ConsultationHandler {
	return &ConsultationHandler{
		svc: svc,
		now: clockOrSystem(clock),
	}
}

type bookRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Message  string `json:"message"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type assignRequest struct {
	Counselor string `json:"counselor"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type noteRequest struct {
	Text string `json:"text" binding:"required"`
}

type meetLinkRequest struct {
	Link string `json:"link"`
}

func (h *ConsultationHandler) RegisterRoutes(router *gin.RouterGroup) {
	consultations := router.Group("/consultations")
	{
		consultations.POST("", h.Book)
		consultations.GET("", h.ListOwn)
		consultations.POST("/:id/cancel", h.Cancel)
	}
}

func (h *ConsultationHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	consultations := router.Group("/consultations")
	{
		consultations.GET("", h.ListAll)
		consultations.GET("/kpis", h.KPIs)
		consultations.GET("/report", h.Report)
		consultations.PATCH("/:id/status", h.UpdateStatus)
		consultations.PUT("/:id/assign", h.Assign)
		consultations.POST("/:id/notes", h.AddNote)
		consultations.PUT("/:id/meet-link", h.SetMeetLink)
	}
}

// filterFromQuery reads search, category, status, from and to.
func filterFromQuery(c *gin.Context) services.BookingFilter {
	return services.BookingFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
}

func (h *ConsultationHandler) Book(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.svc.Book(c.Request.Context(), session, services.BookInput{
		Name:     req.Name,
		Email:    req.Email,
		Category: req.Category,
		Date:     req.Date,
		Time:     req.Time,
		Message:  req.Message,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *ConsultationHandler) ListOwn(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	filter := filterFromQuery(c)
	filter.OwnerID = session.UserID

	bookings, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *ConsultationHandler) Cancel(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	booking, err := h.svc.Cancel(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *ConsultationHandler) ListAll(c *gin.Context) {
	bookings, err := h.svc.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *ConsultationHandler) KPIs(c *gin.Context) {
	kpis, err := h.svc.KPIs(c.Request.Context(), filterFromQuery(c), h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, kpis)
}

func (h *ConsultationHandler) Report(c *gin.Context) {
	report, err := h.svc.Report(c.Request.Context(), filterFromQuery(c), h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ConsultationHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *ConsultationHandler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.svc.Assign(c.Request.Context(), services.AssignInput{
		ID:        c.Param("id"),
		Counselor: req.Counselor,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ConsultationHandler) AddNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.svc.AddNote(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *ConsultationHandler) SetMeetLink(c *gin.Context) {
	var req meetLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.svc.SetMeetLink(c.Request.Context(), c.Param("id"), req.Link)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
