package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pliu/messagely/internal/auth"
)

func TestEnsureLoggedIn(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	guard := &Auth{Tokens: tokens}

	validToken, err := tokens.Issue("alice")
	require.NoError(t, err)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice", CallerUsername(r))
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "Valid Token",
			header:         "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Scheme",
			header:         "Basic abc123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage Token",
			header:         "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			guard.EnsureLoggedIn(nextHandler).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestEnsureCorrectUser(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	guard := &Auth{Tokens: tokens}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Path vars only exist when the request goes through the router.
	r := mux.NewRouter()
	r.Handle("/users/{username}", guard.EnsureLoggedIn(guard.EnsureCorrectUser(next)))

	aliceToken, err := tokens.Issue("alice")
	require.NoError(t, err)

	t.Run("Same User", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/users/alice", nil)
		req.Header.Set("Authorization", "Bearer "+aliceToken)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Different User", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/users/bob", nil)
		req.Header.Set("Authorization", "Bearer "+aliceToken)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	RequestLogger(logger)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
