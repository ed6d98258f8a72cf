// Package api provides the HTTP handlers for the chat service.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/DineshDhasara/supportbot/internal/engine"
	"github.com/DineshDhasara/supportbot/internal/orders"
)

// Error codes returned to clients on request validation and
// processing failures.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeMissingMessage      = "MISSING_MESSAGE"
	CodeMissingSession      = "MISSING_SESSION"
	CodeInvalidBatchRequest = "INVALID_BATCH_REQUEST"
	CodeProcessingError     = engine.ProcessingErrorCode
	CodeProfileNotFound     = "PROFILE_NOT_FOUND"
	CodeOrderNotFound       = "ORDER_NOT_FOUND"
)

// maxBatchSize bounds one batch request.
const maxBatchSize = 20

// Handler provides common handler utilities.
type Handler struct {
	eng     *engine.Engine
	catalog orders.Catalog
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(eng *engine.Engine, catalog orders.Catalog) *Handler {
	return &Handler{eng: eng, catalog: catalog}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response with a machine-readable code.
func Error(w http.ResponseWriter, status int, message, code string) {
	JSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
		"code":    code,
	})
}
