package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/handler/http/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDependencies struct {
	AuthHandler         *AuthHandler
	FitnessHandler      *FitnessHandler
	NutritionHandler    *NutritionHandler
	WellnessHandler     *WellnessHandler
	ConsultationHandler *ConsultationHandler
	ProgramHandler      *ProgramHandler
	DashboardHandler    *DashboardHandler
	Sessions            middleware.SessionResolver

	// Store is nil for the in-memory backend.
	Store      Pinger
	Redis      *redis.Client
	RateLimit  int
	RateWindow time.Duration
	StartTime  time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "disabled"
		if deps.Store != nil {
			dbStatus = "connected"
			if err := deps.Store.Ping(c.Request.Context()); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.SessionMiddleware(deps.Sessions))
	if deps.Redis != nil && deps.RateLimit > 0 {
		protected.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow))
	}
	{
		deps.AuthHandler.RegisterProtectedRoutes(protected)
		deps.FitnessHandler.RegisterRoutes(protected)
		deps.NutritionHandler.RegisterRoutes(protected)
		deps.WellnessHandler.RegisterRoutes(protected)
		deps.ConsultationHandler.RegisterRoutes(protected)
		deps.ProgramHandler.RegisterRoutes(protected)
		deps.DashboardHandler.RegisterRoutes(protected)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		deps.AuthHandler.RegisterAdminRoutes(admin)
		deps.ConsultationHandler.RegisterAdminRoutes(admin)
		deps.ProgramHandler.RegisterAdminRoutes(admin)
		deps.DashboardHandler.RegisterAdminRoutes(admin)
	}

	return router
}
