// Package response writes the JSON envelopes shared by handlers and middleware.
package response

import (
	"encoding/json"
	"net/http"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
)

// JSON writes data with the given status. A nil data writes only the header.
func JSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// Error maps err to its status and category and writes an ErrorResponse.
// Server errors are logged with the cause; client errors at debug level.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error("request failed: "+category, err)
		} else {
			log.Debug("request rejected", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   status,
				"category": category,
			})
		}
	}

	_ = JSON(w, status, domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// Status writes a bare error body for protocol-level failures that carry
// no AppError, such as 405 or 429.
func Status(w http.ResponseWriter, status int, category, message string) {
	_ = JSON(w, status, domain.ErrorResponse{Code: status, Category: category, Message: message})
}
