// Package request decodes path, query and body input for the API handlers.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	apperror "stockledger/internal/errors"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads one JSON object from the body into dst. Unknown fields
// and trailing data are rejected.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.NewValidationError("request body is empty")
		}
		return apperror.NewValidationError(fmt.Sprintf("invalid JSON payload: %v", err))
	}
	if dec.More() {
		return apperror.NewValidationError("request body must hold a single JSON object")
	}
	return nil
}

// PathID parses the named path wildcard as a positive id.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter. A missing value
// yields def.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError(fmt.Sprintf("query parameter %s must be an integer", name))
	}
	return v, nil
}
