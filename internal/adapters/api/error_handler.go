package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"allweather.app/internal/adapters/infrastructure"
	"allweather.app/internal/ports"
	errorspkg "allweather.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// statusFor maps an application error to its HTTP status and public message.
func statusFor(err error) (int, ErrorResponse) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"}
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		return http.StatusBadRequest, ErrorResponse{Error: appErr.Message, Fields: appErr.Fields}
	case errorspkg.NotFoundError:
		return http.StatusNotFound, ErrorResponse{Error: appErr.Message}
	case errorspkg.ConflictError:
		return http.StatusConflict, ErrorResponse{Error: appErr.Message}
	case errorspkg.ExternalAPIError:
		return http.StatusServiceUnavailable, ErrorResponse{Error: "External service unavailable"}
	case errorspkg.EmailError:
		return http.StatusServiceUnavailable, ErrorResponse{Error: "Unable to send email"}
	case errorspkg.NotificationError:
		return http.StatusServiceUnavailable, ErrorResponse{Error: "Unable to send notification"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"}
	}
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			ports.F("path", c.Request.URL.Path),
			ports.F("status", status),
			ports.F("error", err))
	}
	c.JSON(status, body)
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	s.logger.Debug("Metrics endpoint called")

	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

type healthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth reports 503 only when a component is unhealthy. Degraded
// components still serve bookings.
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())
	overall := infrastructure.Overall(results)

	status := http.StatusOK
	if overall == infrastructure.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, healthResponse{Status: overall, Components: results})
}
