package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/payment-service/internal"
	"github.com/frahmantamala/payment-service/pkg/logger"
)

// Response is the success envelope.
type Response struct {
	Content    interface{} `json:"content"`
	StatusCode int         `json:"statusCode"`
}

// ResponseError is the error envelope; ErrorCode carries the HTTP status.
type ResponseError struct {
	ErrorCode   int    `json:"errorCode"`
	Description string `json:"description"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a raw JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteContent writes a success response wrapped in the standard envelope
func (h *BaseHandler) WriteContent(w http.ResponseWriter, status int, content interface{}) {
	h.WriteJSON(w, status, Response{Content: content, StatusCode: status})
}

// WriteError writes an error response in the standard error envelope
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, description string) {
	h.Logger.Error("http error", "status", status, "description", description)
	h.WriteJSON(w, status, ResponseError{ErrorCode: status, Description: description})
}

// HandleServiceError maps service errors onto the error envelope. Anything
// outside the taxonomy is a 500 and logged with its cause.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error("unexpected service error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "unexpected error occurred")
}
