package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/api/shared"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/mocks"
	"github.com/myflix/myflix-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	alice := &domain.User{ID: uuid.New(), Username: "alice1", Email: "alice@example.com"}

	tests := []struct {
		name            string
		authHeader      string
		authenticateErr error
		user            *domain.User
		expectedStatus  int
		handlerRuns     bool
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			user:           alice,
			expectedStatus: http.StatusOK,
			handlerRuns:    true,
		},
		{
			name:           "missing auth header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:            "expired token",
			authHeader:      "Bearer expired-token",
			authenticateErr: auth.ErrExpiredToken,
			expectedStatus:  http.StatusUnauthorized,
		},
		{
			name:            "invalid token",
			authHeader:      "Bearer invalid-token",
			authenticateErr: auth.ErrInvalidToken,
			expectedStatus:  http.StatusUnauthorized,
		},
		{
			name:            "deleted subject",
			authHeader:      "Bearer orphaned-token",
			authenticateErr: auth.ErrUnknownSubject,
			expectedStatus:  http.StatusUnauthorized,
		},
		{
			name:            "store outage is a 500, not a 401",
			authHeader:      "Bearer valid-token",
			authenticateErr: errors.New("connection refused"),
			expectedStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			authenticator := &mocks.MockAuthenticator{
				User: tt.user,
				Err:  tt.authenticateErr,
			}
			middleware := NewAuthMiddleware(authenticator)

			handlerRan := false
			var capturedUser *domain.User
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
				if user, ok := CurrentUser(r); ok {
					capturedUser = user
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/movies", nil)
			if tt.authHeader != "" {
				req.Header.Add("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(nextHandler).ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, tt.handlerRuns, handlerRan)

			if tt.handlerRuns {
				assert.Equal(t, tt.user, capturedUser)
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	alice := &domain.User{ID: uuid.New(), Username: "alice1"}

	t.Run("context with user", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequest("GET", "/", nil)
		require.NoError(t, err)
		ctx := context.WithValue(req.Context(), shared.UserContextKey, alice)
		req = req.WithContext(ctx)

		user, ok := CurrentUser(req)
		assert.True(t, ok)
		assert.Equal(t, alice, user)
	})

	t.Run("context without user", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequest("GET", "/", nil)
		require.NoError(t, err)

		user, ok := CurrentUser(req)
		assert.False(t, ok)
		assert.Nil(t, user)
	})
}
