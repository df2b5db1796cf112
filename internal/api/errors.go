// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/font"
	"github.com/ManuGH/fontview/internal/log"
	"github.com/ManuGH/fontview/internal/session"
)

// errBadRequest marks malformed client input.
var errBadRequest = errors.New("bad request")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// classify maps a domain error onto a status code and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, session.ErrTypefaceNotFound):
		return http.StatusNotFound, "typeface_not_found"
	case errors.Is(err, axis.ErrUnknownAxis):
		return http.StatusConflict, "unknown_axis"
	case errors.Is(err, font.ErrMalformedAxis):
		return http.StatusUnprocessableEntity, "malformed_axis"
	case errors.Is(err, catalog.ErrUnknownPreset):
		return http.StatusBadRequest, "unknown_preset"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError writes err as an errorBody. Internal errors are logged and their
// detail withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, name := classify(err)
	body := errorBody{
		Error:     name,
		Detail:    err.Error(),
		RequestID: log.RequestIDFromContext(r.Context()),
	}

	logger := log.WithComponentFromContext(r.Context(), "api")
	if code >= http.StatusInternalServerError {
		logger.Error().Err(err).Str(log.FieldEvent, "api.internal_error").Str(log.FieldPath, r.URL.Path).Msg("request failed")
		body.Detail = http.StatusText(code)
	} else {
		logger.Debug().Err(err).Str(log.FieldEvent, "api.request_rejected").Int("status", code).Msg("request rejected")
	}

	writeJSON(w, code, body)
}
