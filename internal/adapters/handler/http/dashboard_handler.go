package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

type DashboardHandler struct {
	svc *services.DashboardService
	now Clock
}

func NewDashboardHandler(svc *services.DashboardService, clock Clock) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
		now: clockOrSystem(clock),
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Student)
}

func (h *DashboardHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/overview", h.Admin)
}

func (h *DashboardHandler) Student(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	dash, err := h.svc.Student(c.Request.Context(), session, h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	overview, err := h.svc.Admin(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
