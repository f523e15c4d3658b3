package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	barnerr "github.com/jwebster45206/creature-barn/internal/errors"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error code to its HTTP status.
func statusFor(err error) int {
	switch barnerr.GetCode(err) {
	case barnerr.CodeInvalidInput:
		return http.StatusBadRequest
	case barnerr.CodeNotFound:
		return http.StatusNotFound
	case barnerr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as an ErrorResponse. Internal errors are logged and
// their message is not exposed.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusFor(err)
	code := string(barnerr.GetCode(err))
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		msg = "internal server error"
		code = string(barnerr.CodeInternal)
	}
	writeJSON(w, log, status, ErrorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("Failed to marshal response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// readBody reads at most limit bytes of the request body as stat block
// text. An oversized or unreadable body is invalid input.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) (string, error) {
	if r.Body == nil {
		return "", barnerr.InvalidInput("request body is required")
	}
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	buf, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", barnerr.InvalidInputf("request body exceeds %d bytes", limit)
		}
		return "", barnerr.WrapWithCode(err, barnerr.CodeInvalidInput, "read request body")
	}
	return string(buf), nil
}
