package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/tipfolio/internal/importer"
	subscriptiondomain "github.com/smallbiznis/tipfolio/internal/subscription/domain"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	userdomain "github.com/smallbiznis/tipfolio/internal/user/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPremiumRequired = errors.New("premium_required")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, userdomain.ErrNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrPremiumRequired):
		return http.StatusPaymentRequired, errorPayload{
			Type:    "premium_required",
			Message: "this feature requires an active subscription",
		}
	case errors.Is(err, tipdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, tipdomain.ErrFutureDate):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "future date not allowed",
		}
	case errors.Is(err, tipdomain.ErrNegativeAmount):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "amount must not be negative",
		}
	case errors.Is(err, userdomain.ErrInvalidEmail):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid email",
		}
	case errors.Is(err, importer.ErrEmptyInput):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "no valid input",
		}
	case errors.Is(err, subscriptiondomain.ErrUnknownProvider),
		errors.Is(err, subscriptiondomain.ErrMalformedPayload),
		errors.Is(err, subscriptiondomain.ErrUnsupportedEvent),
		errors.Is(err, subscriptiondomain.ErrInvalidSignature):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_webhook",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
