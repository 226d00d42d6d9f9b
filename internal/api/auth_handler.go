package api

import (
	"context"
	"net/http"

	"github.com/myflix/myflix-api/internal/api/shared"
	"github.com/myflix/myflix-api/internal/service/auth"
)

// LoginService is the part of the authentication service the login handler
// depends on.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService LoginService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService LoginService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles the POST /login endpoint. On success it returns the user
// record together with a freshly issued bearer token. All credential
// rejections produce the same 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		User:  NewUserResponse(result.User),
		Token: result.Token,
	})
}
