package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tphakala/venomid/internal/errors"
	"github.com/tphakala/venomid/internal/inference"
	"github.com/tphakala/venomid/internal/logger"
)

const (
	msgMissingSymptoms  = "Missing symptoms in request"
	msgInvalidSymptoms  = "Symptoms must be a string"
	msgEmptySymptoms    = "Symptoms must not be empty"
	msgStoreUnavailable = "Reference store unavailable"
	msgInternal         = "Internal server error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// NewErrorResponse builds an ErrorResponse with a fresh correlation ID.
// The error field repeats message when err is nil.
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	errorStr := message
	if err != nil {
		errorStr = err.Error()
	}
	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: uuid.NewString()[:8],
	}
}

// handleError writes an ErrorResponse and logs it with the correlation ID.
// Server side failures never expose the underlying error text.
func (s *Server) handleError(c echo.Context, err error, message string, code int) error {
	exposed := err
	if code >= http.StatusInternalServerError {
		exposed = nil
	}
	resp := NewErrorResponse(exposed, message, code)

	log := s.log.WithContext(c.Request().Context())
	fields := []logger.Field{
		logger.String("correlation_id", resp.CorrelationID),
		logger.String("path", c.Request().URL.Path),
		logger.Int("code", code),
	}
	if err != nil {
		fields = append(fields, logger.Error(err))
	}
	if code >= http.StatusInternalServerError {
		log.Error(message, fields...)
	} else {
		log.Debug(message, fields...)
	}

	return c.JSON(code, resp)
}

// inferenceErrorStatus maps a Service error to an HTTP status and message.
func inferenceErrorStatus(err error) (int, string) {
	switch {
	case inference.IsInputError(err):
		return http.StatusBadRequest, msgEmptySymptoms
	case inference.IsStoreUnavailable(err):
		return http.StatusServiceUnavailable, msgStoreUnavailable
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// httpErrorHandler renders errors escaping handlers and middleware (404,
// 405, 413, panics caught by Recover) as ErrorResponse bodies.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := msgInternal
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = s.handleError(c, nil, message, code)
	}
	if err != nil {
		s.log.Warn("failed to write error response", logger.Error(err))
	}
}
