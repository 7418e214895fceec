// Package gateway is the HTTP boundary: it translates JSON requests into
// core calls and typed core failures into transport statuses. No business
// rule lives here.
package gateway

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"pairchat/domain"
	"pairchat/errors"
	"pairchat/services"
)

type Handler struct {
	accounts services.IAccountService
	messages services.IMessageService
	log      *slog.Logger
}

func NewHandler(accounts services.IAccountService, messages services.IMessageService, log *slog.Logger) *Handler {
	return &Handler{accounts: accounts, messages: messages, log: log}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sendMessageRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, errors.ErrValidation)
		return
	}

	if err := h.accounts.Register(req.Username, req.Password); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User registered successfully.",
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, errors.ErrValidation)
		return
	}

	handle, err := h.accounts.Login(req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"username": handle,
	})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	requester := r.URL.Query().Get("username")
	others, err := h.accounts.ListOthers(requester)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"users": others})
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, errors.ErrValidation)
		return
	}

	if _, err := h.messages.Send(req.Sender, req.Recipient, req.Text); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent.",
	})
}

func (h *Handler) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	user1 := r.URL.Query().Get("user1")
	user2 := r.URL.Query().Get("user2")

	history, err := h.messages.History(user1, user2)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"messages": lo.Map(history, func(msg domain.Message, _ int) messageResponse {
			return toMessageResponse(msg)
		}),
	})
}

func toMessageResponse(msg domain.Message) messageResponse {
	return messageResponse{
		ID:        msg.ID.String(),
		Sender:    msg.From,
		Recipient: msg.To,
		Text:      msg.Body,
		CreatedAt: msg.SentAt,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("response encoding failed", "error", err)
	}
}

// respondError maps the core failure kinds to transport statuses. Anything
// outside the taxonomy is a storage or programming failure: logged with
// detail, surfaced without it.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case stderrors.Is(err, errors.ErrValidation), stderrors.Is(err, errors.ErrContentBlocked):
		status = http.StatusBadRequest
	case stderrors.Is(err, errors.ErrHandleTaken):
		status = http.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	default:
		h.log.Error("internal error", "error", err)
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.respondJSON(w, status, map[string]string{"error": err.Error()})
}
