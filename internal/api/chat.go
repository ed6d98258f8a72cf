package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DineshDhasara/supportbot/internal/domain"
	"github.com/DineshDhasara/supportbot/internal/engine"
)

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type batchRequest struct {
	SessionID string   `json:"sessionId"`
	Messages  []string `json:"messages"`
}

type chatResponse struct {
	Success    bool            `json:"success"`
	Reply      string          `json:"reply"`
	Intent     string          `json:"intent"`
	Confidence float64         `json:"confidence"`
	Metadata   domain.Metadata `json:"metadata"`
}

func toChatResponse(res *domain.Result) chatResponse {
	return chatResponse{
		Success:    true,
		Reply:      res.Reply,
		Intent:     res.Intent,
		Confidence: res.Confidence,
		Metadata:   res.Metadata,
	}
}

// RegisterRoutes mounts the chat API under /api.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.Chat)
		r.Post("/chat/batch", h.ChatBatch)
		r.Get("/chat/analytics", h.Analytics)
		r.Get("/chat/profile/{sessionID}", h.Profile)
		r.Get("/orders/{orderID}", h.GetOrder)
		r.Post("/ticket", h.CreateTicket)
	})
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body", CodeInvalidRequest)
		return
	}
	if req.Message == "" {
		Error(w, http.StatusBadRequest, "Message is required", CodeMissingMessage)
		return
	}
	if req.SessionID == "" {
		Error(w, http.StatusBadRequest, "Session ID is required", CodeMissingSession)
		return
	}

	res, err := h.eng.Process(r.Context(), engine.Request{SessionID: req.SessionID, Message: req.Message})
	if err != nil {
		slog.Error("Chat processing failed", "session_id", req.SessionID, "error", err)
		fail := engine.FailureResult(req.SessionID)
		JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success":  false,
			"reply":    fail.Reply,
			"error":    "Internal processing error",
			"code":     CodeProcessingError,
			"metadata": fail.Metadata,
		})
		return
	}

	JSON(w, http.StatusOK, toChatResponse(res))
}

// ChatBatch handles POST /api/chat/batch. Messages are processed
// sequentially so each one sees the context left by the previous.
func (h *Handler) ChatBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body", CodeInvalidBatchRequest)
		return
	}
	if req.SessionID == "" {
		Error(w, http.StatusBadRequest, "Session ID is required", CodeMissingSession)
		return
	}
	if len(req.Messages) == 0 || len(req.Messages) > maxBatchSize {
		Error(w, http.StatusBadRequest, "Messages must contain between 1 and 20 entries", CodeInvalidBatchRequest)
		return
	}
	for _, m := range req.Messages {
		if m == "" {
			Error(w, http.StatusBadRequest, "Messages must be non-empty", CodeInvalidBatchRequest)
			return
		}
	}

	results := h.eng.ProcessBatch(r.Context(), req.SessionID, req.Messages)
	out := make([]chatResponse, 0, len(results))
	for _, res := range results {
		out = append(out, toChatResponse(res))
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"results": out,
	})
}

// Analytics handles GET /api/chat/analytics.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.eng.Analytics(),
	})
}

// Profile handles GET /api/chat/profile/{sessionID}.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	profile, ok := h.eng.Profile(sessionID)
	if !ok {
		Error(w, http.StatusNotFound, "User profile not found", CodeProfileNotFound)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"sessionId": sessionID,
		"data":      profile,
	})
}
