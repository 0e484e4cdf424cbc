package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

type NutritionHandler struct {
	svc *services.NutritionService
}

func NewNutritionHandler(svc *services.NutritionService) *NutritionHandler {
	return &NutritionHandler{svc: svc}
}

type logMealRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (h *NutritionHandler) RegisterRoutes(router *gin.RouterGroup) {
	nutrition := router.Group("/nutrition")
	{
		nutrition.GET("/meals", h.List)
		nutrition.POST("/meals", h.Log)
		nutrition.DELETE("/meals/:id", h.Delete)
		nutrition.GET("/summary", h.Summary)
	}
}

func (h *NutritionHandler) List(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	meals, err := h.svc.Meals(c.Request.Context(), session.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, meals)
}

func (h *NutritionHandler) Log(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	meal, err := h.svc.LogMeal(c.Request.Context(), services.LogMealInput{
		Owner:    session.UserID,
		Name:     req.Name,
		Category: req.Category,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

func (h *NutritionHandler) Delete(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteMeal(c.Request.Context(), session.UserID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NutritionHandler) Summary(c *gin.Context) {
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
