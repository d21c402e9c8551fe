package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/session"
)

// respondError maps service errors to status codes and writes an
// ErrorResponse.
func respondError(c echo.Context, err error) error {
	status, kind, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    status,
	})
}

func classify(err error) (int, string, string) {
	var (
		fieldErrs validator.ValidationErrors
		valErrs   models.ValidationErrors
		valErr    models.ValidationError
		fieldErr  *models.FieldError
		httpErr   *echo.HTTPError
		authErr   *models.AuthenticationError
		rateErr   *models.RateLimitError
		genErr    *models.GenerationError
		netErr    *models.NetworkError
		apiErr    *models.APIError
	)

	switch {
	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest, "validation_error", describeFieldErrors(fieldErrs)
	case errors.As(err, &valErrs), errors.As(err, &fieldErr), errors.As(err, &valErr):
		return http.StatusBadRequest, "validation_error", err.Error()
	case errors.As(err, &httpErr):
		return httpErr.Code, "invalid_request", fmt.Sprint(httpErr.Message)
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "not_found", "Session not found"
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, "unauthorized", authErr.Error()
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests, "rate_limited", rateErr.Error()
	case errors.As(err, &genErr):
		return http.StatusBadGateway, "generation_error", genErr.Error()
	case errors.As(err, &netErr):
		return http.StatusBadGateway, "backend_unavailable", netErr.Error()
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode, "backend_error", apiErr.Message
		}
		return http.StatusBadGateway, "backend_error", apiErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout", "Upstream request timed out"
	default:
		return http.StatusInternalServerError, "internal_error", "Internal server error"
	}
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
