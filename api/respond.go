package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rs/zerolog"
)

// maxRequestSize bounds every JSON payload read by decodeJSON
const maxRequestSize = 1 << 20

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal the data first so a failure can still become a 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Fields:  apiErr.Fields,
		Details: apiErr.Details,
	}

	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response.Cause = apiErr.GetFullError()
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg("request failed")
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// decodeJSON reads a single JSON document of at most maxRequestSize bytes into dst
func decodeJSON(w http.ResponseWriter, req *http.Request, payloadName string, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxRequestSize))
	if err := decoder.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &syntaxErr):
			return errs.NewInvalidJSONError(err)
		case errors.As(err, &tooLarge):
			return errs.NewApiErr(http.StatusRequestEntityTooLarge, fmt.Sprintf("%s exceeds %d bytes", payloadName, tooLarge.Limit))
		}
		return errs.Malformed(payloadName)
	}
	return nil
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
