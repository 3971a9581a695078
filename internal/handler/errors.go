package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cmms-platform/cmms-service/internal/errs"
)

// respondError maps domain errors to HTTP codes; unknown errors are logged
// and returned as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrAssetNotFound),
		errors.Is(err, errs.ErrWorkOrderNotFound),
		errors.Is(err, errs.ErrPartNotFound),
		errors.Is(err, errs.ErrLocationNotFound),
		errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrPMScheduleNotFound),
		errors.Is(err, errs.ErrPortalNotFound),
		errors.Is(err, errs.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrSlugTaken),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrTerminalStatus),
		errors.Is(err, errs.ErrWorkOrderRefused):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrEmptyMessage),
		errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrPortalInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("handler: unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
