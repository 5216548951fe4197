package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pliu/messagely/internal/apperr"
	"github.com/pliu/messagely/internal/auth"
)

type contextKey string

const UsernameKey contextKey = "username"

// Auth provides the token-checking middleware shared by the protected
// routes.
type Auth struct {
	Tokens *auth.TokenManager
}

// EnsureLoggedIn verifies the bearer token and stores the caller's username
// in the request context. Missing, malformed, and unverifiable tokens all
// short-circuit with 401.
func (a *Auth) EnsureLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			apperr.Respond(w, apperr.New(apperr.ErrInvalidToken, "authorization header required", nil))
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			apperr.Respond(w, apperr.New(apperr.ErrInvalidToken, "invalid authorization format", nil))
			return
		}

		username, err := a.Tokens.Verify(tokenString)
		if err != nil {
			apperr.Respond(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EnsureCorrectUser requires that the authenticated username matches the
// {username} path parameter. Runs after EnsureLoggedIn.
func (a *Auth) EnsureCorrectUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, _ := r.Context().Value(UsernameKey).(string)
		if username == "" || username != mux.Vars(r)["username"] {
			apperr.Respond(w, apperr.New(apperr.ErrForbidden, "not permitted for this user", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerUsername extracts the authenticated username placed in the context
// by EnsureLoggedIn.
func CallerUsername(r *http.Request) string {
	username, _ := r.Context().Value(UsernameKey).(string)
	return username
}
