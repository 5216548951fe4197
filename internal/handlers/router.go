package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pliu/messagely/internal/auth"
	"github.com/pliu/messagely/internal/middleware"
	"github.com/pliu/messagely/internal/store"
)

// NewRouter wires the three route groups: auth (open), users, and messages.
// Protected routes chain EnsureLoggedIn, the per-user routes additionally
// EnsureCorrectUser.
func NewRouter(s store.Store, hasher *auth.Hasher, tokens *auth.TokenManager) *mux.Router {
	authHandler := &AuthHandler{Store: s, Hasher: hasher, Tokens: tokens}
	userHandler := &UserHandler{Store: s}
	messageHandler := &MessageHandler{Store: s}
	guard := &middleware.Auth{Tokens: tokens}

	loggedIn := func(h http.HandlerFunc) http.Handler {
		return guard.EnsureLoggedIn(h)
	}
	sameUser := func(h http.HandlerFunc) http.Handler {
		return guard.EnsureLoggedIn(guard.EnsureCorrectUser(h))
	}

	r := mux.NewRouter()

	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")

	r.Handle("/users", loggedIn(userHandler.List)).Methods("GET")
	r.Handle("/users/{username}", sameUser(userHandler.Get)).Methods("GET")
	r.Handle("/users/{username}/to", sameUser(userHandler.MessagesTo)).Methods("GET")
	r.Handle("/users/{username}/from", sameUser(userHandler.MessagesFrom)).Methods("GET")

	r.Handle("/messages", loggedIn(messageHandler.Create)).Methods("POST")
	r.Handle("/messages/{id}", loggedIn(messageHandler.Get)).Methods("GET")
	r.Handle("/messages/{id}/read", loggedIn(messageHandler.MarkRead)).Methods("POST")

	return r
}
