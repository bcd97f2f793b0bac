package api

import (
	"errors"
	"net/http"

	"gym24/internal/apperrors"
	"gym24/internal/logger"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
	Field string `json:"field,omitempty" example:"name"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err using the kind taxonomy. Authentication failures
// always carry the same generic message.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.WithError(err).Error("unclassified error", "path", c.FullPath())
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Kind {
	case apperrors.KindAuthentication:
		c.JSON(status, ErrorResponse{Error: "Unauthorized"})
	case apperrors.KindRemoteStore:
		logger.WithError(appErr.Err).Error(appErr.Message, "path", c.FullPath())
		msg := appErr.Message
		if appErr.Err != nil {
			msg = appErr.Err.Error()
		}
		c.JSON(status, ErrorResponse{Error: msg})
	case apperrors.KindInternal:
		logger.WithError(appErr.Err).Error(appErr.Message, "path", c.FullPath())
		c.JSON(status, ErrorResponse{Error: appErr.Message})
	default:
		c.JSON(status, ErrorResponse{Error: appErr.Message, Field: appErr.Field})
	}
}

func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
}
