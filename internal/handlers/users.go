package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pliu/messagely/internal/apperr"
	"github.com/pliu/messagely/internal/models"
	"github.com/pliu/messagely/internal/store"
)

type UserHandler struct {
	Store store.Store
}

// List returns the public summary of every user.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.AllUsers(r.Context())
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// Get returns the detail for one user, including join and last-login times.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUserByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// MessagesTo returns the messages received by the user, with sender
// profiles embedded.
func (h *UserHandler) MessagesTo(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Store.MessagesTo(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// MessagesFrom returns the messages sent by the user, with recipient
// profiles embedded.
func (h *UserHandler) MessagesFrom(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Store.MessagesFrom(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
