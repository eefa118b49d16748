// errors.go error taxonomy and JSON response helpers
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	errValidation = errors.New("validation error")
	errAuth       = errors.New("unauthorized")
	errNotFound   = errors.New("not found")
	errConflict   = errors.New("conflict")
	errStorage    = errors.New("storage error")
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(resource string) error {
	return fmt.Errorf("%w: %s", errNotFound, resource)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("encoding response")
	}
}

// writeErr maps the error taxonomy onto HTTP statuses. Every handler error
// lands here; nothing is swallowed.
func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errAuth):
		status = http.StatusUnauthorized
	case errors.Is(err, errNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errConflict):
		status = http.StatusConflict
	case errors.Is(err, errStorage):
		status = http.StatusBadGateway
	}
	if status >= 500 {
		logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"message": err.Error()})
}

// isDuplicateKey recognizes unique-index violations from the sqlite driver,
// which predates gorm's error translation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validationErr("invalid JSON body: %v", err)
	}
	return nil
}
