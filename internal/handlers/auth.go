package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pliu/messagely/internal/apperr"
	"github.com/pliu/messagely/internal/auth"
	"github.com/pliu/messagely/internal/models"
	"github.com/pliu/messagely/internal/store"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	Store  store.Store
	Hasher *auth.Hasher
	Tokens *auth.TokenManager
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates the credentials, touches last_login_at, and returns a
// bearer token. Unknown users and wrong passwords get the same answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		apperr.Respond(w, apperr.InvalidInput("invalid request body"))
		return
	}
	if creds.Username == "" || creds.Password == "" {
		apperr.Respond(w, apperr.InvalidInput("username and password are required"))
		return
	}

	user, err := h.Store.GetUserByUsername(r.Context(), creds.Username)
	if err != nil {
		if apperr.IsCode(err, apperr.ErrNotFound) {
			apperr.Respond(w, apperr.InvalidCredentials())
			return
		}
		apperr.Respond(w, err)
		return
	}

	if !h.Hasher.Verify(creds.Password, user.Password) {
		apperr.Respond(w, apperr.InvalidCredentials())
		return
	}

	if err := h.Store.UpdateLoginTimestamp(r.Context(), creds.Username); err != nil {
		apperr.Respond(w, err)
		return
	}

	token, err := h.Tokens.Issue(creds.Username)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{Token: token})
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Register creates the user, logs them in, and returns a bearer token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.InvalidInput("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		apperr.Respond(w, apperr.InvalidInput("username and password are required"))
		return
	}

	hashed, err := h.Hasher.Hash(req.Password)
	if err != nil {
		apperr.Respond(w, apperr.Database("unable to hash password", err))
		return
	}

	user := &models.User{
		Username:  req.Username,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	if _, err := h.Store.RegisterUser(r.Context(), user); err != nil {
		apperr.Respond(w, err)
		return
	}

	if err := h.Store.UpdateLoginTimestamp(r.Context(), req.Username); err != nil {
		apperr.Respond(w, err)
		return
	}

	token, err := h.Tokens.Issue(req.Username)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, tokenResponse{Token: token})
}
