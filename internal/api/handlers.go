package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/venomid/internal/inference"
)

// Inferer runs one inference request.
type Inferer interface {
	Infer(ctx context.Context, symptoms string) ([]inference.ResultEntry, error)
}

// InferRequest is the body of POST /api/infer.
type InferRequest struct {
	Symptoms string `json:"symptoms"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// parseInferRequest accepts a JSON object with a string "symptoms" key.
// A body that is not an object, or lacks the key, or holds null, is
// reported as missing; any other non-string value as invalid.
func parseInferRequest(body io.Reader) (*InferRequest, string) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, msgMissingSymptoms
	}

	field, ok := raw["symptoms"]
	if !ok || string(field) == "null" {
		return nil, msgMissingSymptoms
	}

	var req InferRequest
	if err := json.Unmarshal(field, &req.Symptoms); err != nil {
		return nil, msgInvalidSymptoms
	}
	return &req, ""
}

// handleInfer handles POST /api/infer.
func (s *Server) handleInfer(c echo.Context) error {
	req, problem := parseInferRequest(c.Request().Body)
	if problem != "" {
		return s.handleError(c, nil, problem, http.StatusBadRequest)
	}

	results, err := s.service.Infer(c.Request().Context(), req.Symptoms)
	if err != nil {
		code, message := inferenceErrorStatus(err)
		return s.handleError(c, err, message, code)
	}
	if results == nil {
		results = []inference.ResultEntry{}
	}
	return c.JSON(http.StatusOK, results)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c echo.Context) error {
	uptime := time.Since(s.startTime)
	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       s.version,
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: uptime.Seconds(),
	})
}
