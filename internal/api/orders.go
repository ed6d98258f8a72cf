package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DineshDhasara/supportbot/internal/engine"
)

// GetOrder handles GET /api/orders/{orderID}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	order, err := h.catalog.GetOrder(r.Context(), orderID)
	if err != nil {
		slog.Error("Order lookup failed", "order_id", orderID, "error", err)
		Error(w, http.StatusInternalServerError, "Failed to look up order", CodeProcessingError)
		return
	}
	if order == nil {
		Error(w, http.StatusNotFound, "Order not found", CodeOrderNotFound)
		return
	}

	JSON(w, http.StatusOK, order)
}

type ticketRequest struct {
	SessionID string `json:"sessionId"`
	Issue     string `json:"issue"`
}

// CreateTicket handles POST /api/ticket.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body", CodeInvalidRequest)
		return
	}

	ticketID := engine.NewTicketID()
	slog.Info("Support ticket created", "ticket_id", ticketID, "session_id", req.SessionID, "issue", req.Issue)

	JSON(w, http.StatusOK, map[string]string{
		"ticketId": ticketID,
		"status":   "open",
	})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
