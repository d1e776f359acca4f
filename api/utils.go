package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"finboard/database"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// respondJSON writes payload as JSON with the given status code
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondWithError logs the error and sends a JSON error response
// Use this to avoid exposing internal errors while still logging them
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	evt := log.Warn()
	if code >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).Int("status", code).Msg("API Error: " + message)
	respondJSON(w, code, map[string]string{"error": message})
}

// respondWithStoreError maps repository errors to HTTP status codes
func respondWithStoreError(w http.ResponseWriter, message string, err error) {
	var validation *database.ValidationError
	switch {
	case database.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, err.Error(), err)
	case errors.As(err, &validation):
		respondWithError(w, http.StatusBadRequest, validation.Error(), err)
	default:
		if dup, ok := database.AsDuplicate(err); ok {
			respondJSON(w, http.StatusConflict, map[string]interface{}{
				"error":    "Os dados para este trimestre já foram importados.",
				"existing": dup.Existing,
			})
			return
		}
		respondWithError(w, http.StatusInternalServerError, message, err)
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range map[string]validator.Func{
		"metric_field":    validateMetricField,
		"metric_unit":     validateMetricUnit,
		"metric_category": validateMetricCategory,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// On failure the response has already been written.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, validationMessage(err), err)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return "Invalid request body"
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
