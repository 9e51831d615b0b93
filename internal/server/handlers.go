package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/agbru/convkit/internal/baseconv"
	"github.com/agbru/convkit/internal/byteconv"
	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/logging"
	"github.com/agbru/convkit/internal/service"
	"github.com/agbru/convkit/pkg/models"
)

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleUnits returns the unit ladder of the magnitude converter.
func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"units": s.service.Units(),
	})
}

// handleConvertBase projects a value typed in one base into other bases.
//
// Query parameters: value (required), base (default 10; a number or a name
// such as "hex"), prefix (literal to strip before parsing) and bases (comma
// separated targets, or "advanced" for every base from 2 to 36).
func (s *Server) handleConvertBase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseBaseParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	resp, err := s.service.ConvertBase(ctx, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleConvertBytes projects a magnitude typed in one unit into every unit.
//
// Query parameters: value (required) and unit (default "Bytes").
func (s *Server) handleConvertBytes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseByteParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	resp, err := s.service.ConvertBytes(ctx, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleDetect reports how both converters would route a pasted string.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	if !q.Has("text") {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'text' parameter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	det, err := s.service.Detect(ctx, q.Get("text"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, det)
}

// parseBaseParams extracts a base conversion request from the query string.
//
// Returns:
//   - models.BaseRequest: The request.
//   - error: A ParamError if a parameter is missing or malformed.
func parseBaseParams(r *http.Request) (models.BaseRequest, error) {
	q := r.URL.Query()
	if !q.Has("value") {
		return models.BaseRequest{}, ParamError{Message: "Missing 'value' parameter", StatusCode: http.StatusBadRequest}
	}
	req := models.BaseRequest{Value: q.Get("value"), Base: 10, Prefix: q.Get("prefix")}

	if raw := q.Get("base"); raw != "" {
		b, err := baseconv.ParseBase(raw)
		if err != nil {
			return models.BaseRequest{}, ParamError{Message: "Invalid 'base' parameter: " + err.Error(), StatusCode: http.StatusBadRequest}
		}
		req.Base = b
	}

	switch raw := strings.TrimSpace(q.Get("bases")); strings.ToLower(raw) {
	case "", "simple":
	case "advanced", "all":
		req.Bases = baseconv.AdvancedBases()
	default:
		for _, tok := range strings.Split(raw, ",") {
			b, err := baseconv.ParseBase(tok)
			if err != nil {
				return models.BaseRequest{}, ParamError{Message: "Invalid 'bases' parameter: " + err.Error(), StatusCode: http.StatusBadRequest}
			}
			req.Bases = append(req.Bases, b)
		}
	}
	return req, nil
}

// parseByteParams extracts a magnitude conversion request from the query
// string. The unit is resolved by the service so that unknown units are
// reported the same way on every surface.
func parseByteParams(r *http.Request) (models.ByteRequest, error) {
	q := r.URL.Query()
	if !q.Has("value") {
		return models.ByteRequest{}, ParamError{Message: "Missing 'value' parameter", StatusCode: http.StatusBadRequest}
	}
	req := models.ByteRequest{Value: q.Get("value"), Unit: q.Get("unit")}
	if req.Unit == "" {
		u, _ := byteconv.DefaultLadder().ByExponent(byteconv.Bytes)
		req.Unit = u.Name
	}
	return req, nil
}

// writeParamError reports a ParamError with its own status, anything else as
// 400 Bad Request.
func (s *Server) writeParamError(w http.ResponseWriter, err error) {
	var pe ParamError
	if errors.As(err, &pe) {
		s.writeErrorResponse(w, pe.StatusCode, pe.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeServiceError maps a service error to an HTTP status.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr apperrors.ValidationError
	switch {
	case errors.As(err, &valErr):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInputTooLong):
		s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "Conversion timed out")
	case errors.Is(err, context.Canceled):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "Request canceled")
	default:
		s.logger.Error("conversion failed", err,
			logging.String("path", r.URL.Path),
			logging.String("request_id", RequestIDFromContext(r.Context())))
		s.writeErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// writeJSON writes data as a JSON body with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// writeJSONResponse writes a JSON response and logs encoding failures.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	if err := writeJSON(w, statusCode, data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
