package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a domain error onto the HTTP surface. Idempotent retries
// of completed operations return the prior result with a 200 rather than an
// error body.
func RespondError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		stateErr      *InvalidStateTransitionError
		notFoundErr   *NotFoundError
		permErr       *PermissionError
		processedErr  *AlreadyProcessedError
		declinedErr   *PaymentDeclinedError
		timeoutErr    *PaymentTimeoutError
	)

	switch {
	case errors.As(err, &processedErr):
		c.JSON(http.StatusOK, processedErr.Result)
	case errors.As(err, &validationErr):
		JSONError(c, http.StatusBadRequest, "validation failed", validationErr.Error())
	case errors.As(err, &stateErr):
		// State-transition failures are logged server-side: they indicate a
		// client bug or a lost race.
		GetLogger().Error("invalid state transition", zap.Error(stateErr))
		JSONError(c, http.StatusConflict, "invalid state transition", stateErr.Error())
	case errors.As(err, &notFoundErr):
		JSONError(c, http.StatusNotFound, "not found", notFoundErr.Error())
	case errors.As(err, &permErr):
		JSONError(c, http.StatusForbidden, "forbidden", permErr.Error())
	case errors.As(err, &declinedErr):
		JSONError(c, http.StatusPaymentRequired, "payment declined", declinedErr.Error())
	case errors.As(err, &timeoutErr):
		JSONError(c, http.StatusGatewayTimeout, "payment timed out", timeoutErr.Error())
	default:
		GetLogger().Error("unhandled error", zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "internal error", "An unexpected error occurred. Please try again later.")
	}
}
