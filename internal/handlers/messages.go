package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pliu/messagely/internal/apperr"
	"github.com/pliu/messagely/internal/middleware"
	"github.com/pliu/messagely/internal/store"
)

type MessageHandler struct {
	Store store.Store
}

func messageID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.InvalidInput("invalid message id")
	}
	return id, nil
}

// Get returns one message. Only the sender or the recipient may read it.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := messageID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	message, err := h.Store.GetMessage(r.Context(), id)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	caller := middleware.CallerUsername(r)
	if caller != message.FromUser.Username && caller != message.ToUser.Username {
		apperr.Respond(w, apperr.New(apperr.ErrForbidden, "not a participant in this message", nil))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"message": message})
}

type createMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

// Create sends a message from the authenticated user.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.InvalidInput("invalid request body"))
		return
	}
	if req.ToUsername == "" || req.Body == "" {
		apperr.Respond(w, apperr.InvalidInput("to_username and body are required"))
		return
	}

	message, err := h.Store.CreateMessage(r.Context(), middleware.CallerUsername(r), req.ToUsername, req.Body)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"message": message})
}

type readReceipt struct {
	ID     int64      `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

// MarkRead stamps a message as read. Only the recipient may do this; a
// repeat call keeps the original timestamp.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := messageID(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	message, err := h.Store.GetMessage(r.Context(), id)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	if middleware.CallerUsername(r) != message.ToUser.Username {
		apperr.Respond(w, apperr.New(apperr.ErrForbidden, "only the recipient can mark a message read", nil))
		return
	}

	updated, err := h.Store.MarkMessageRead(r.Context(), id)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": readReceipt{ID: updated.ID, ReadAt: updated.ReadAt},
	})
}
