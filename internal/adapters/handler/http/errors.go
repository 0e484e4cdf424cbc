package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

var (
	notFoundErrors = []error{
		domain.ErrUserNotFound,
		domain.ErrBookingNotFound,
		domain.ErrWorkoutNotFound,
		domain.ErrMealNotFound,
		domain.ErrProgramNotFound,
	}

	validationErrors = []error{
		domain.ErrInvalidEmail,
		domain.ErrUserNameEmpty,
		domain.ErrInvalidRole,
		domain.ErrPasswordTooShort,
		domain.ErrInvalidGoal,
		domain.ErrNegativeValue,
		domain.ErrWorkoutTypeEmpty,
		domain.ErrInvalidIntensity,
		domain.ErrInvalidChecklistID,
		domain.ErrInvalidMeasures,
		domain.ErrMealNameEmpty,
		domain.ErrInvalidMealCategory,
		domain.ErrMoodOutOfRange,
		domain.ErrEntryDateEmpty,
		domain.ErrBookingNameEmpty,
		domain.ErrInvalidBookingCat,
		domain.ErrInvalidBookingDate,
		domain.ErrInvalidBookingTime,
		domain.ErrInvalidStatus,
		domain.ErrNoteEmpty,
		domain.ErrProgramTitleEmpty,
		domain.ErrProgramTitleTooLong,
		domain.ErrProgramDescTooLong,
		domain.ErrInvalidCapacity,
		domain.ErrInvalidProgramStart,
	}

	conflictErrors = []error{
		domain.ErrEmailAlreadyExists,
		domain.ErrInvalidTransition,
		domain.ErrBookingAlreadyClosed,
	}
)

func matchAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

func handleError(c *gin.Context, err error) {
	if target, ok := matchAny(err, notFoundErrors); ok {
		c.JSON(http.StatusNotFound, gin.H{"error": target.Error()})
		return
	}
	if target, ok := matchAny(err, validationErrors); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": target.Error()})
		return
	}
	if target, ok := matchAny(err, conflictErrors); ok {
		c.JSON(http.StatusConflict, gin.H{"error": target.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}

// currentSession aborts with 401 when the route was mounted without
// SessionMiddleware.
func currentSession(c *gin.Context) (domain.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok || !session.Valid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
		return domain.Session{}, false
	}
	return session, true
}

// Clock returns the current time. Handlers derive "today" from it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}

func clockOrSystem(clock Clock) Clock {
	if clock == nil {
		return systemClock
	}
	return clock
}
