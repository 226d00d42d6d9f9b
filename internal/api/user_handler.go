package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/api/shared"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/store"
)

const defaultUserLimit = 100

// UserHandler handles user account API requests: registration, profile
// reads/updates, deregistration and the favorites list.
type UserHandler struct {
	userStore store.UserStore
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore) *UserHandler {
	return &UserHandler{
		userStore: userStore,
	}
}

// Register handles POST /users. Registration is the only user operation
// reachable without a token.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

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

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid user data")
		return
	}
	user.Birthday = req.Birthday

	// The store hashes the plaintext password before persisting.
	if err := h.userStore.Create(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// ListUsers handles GET /users. The listing carries the same outward
// representation as the profile endpoints, so no credential material leaks.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context(), defaultUserLimit, 0)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetUser handles GET /users/{username}. Callers may only read their own
// profile.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	_, username, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	// Re-read the record so the response reflects the stored state rather
	// than the snapshot the middleware resolved.
	user, err := h.userStore.GetByUsername(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateUser handles PUT /users/{username}. Absent fields keep their stored
// values; a supplied password is re-hashed by the store.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest

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

	user, err := h.userStore.GetByID(r.Context(), caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		user.Password = req.Password
	}
	if req.Birthday != nil {
		user.Birthday = req.Birthday
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// DeleteUser handles DELETE /users/{username}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, username, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.userStore.Delete(r.Context(), caller.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": username + " was deregistered",
	})
}

// AddFavorite handles POST /users/{username}/movies/{movieID}. Adding a
// movie that is already a favorite succeeds without duplicating it.
func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	movieID, ok := h.pathMovieID(w, r)
	if !ok {
		return
	}

	if err := h.userStore.AddFavorite(r.Context(), caller.ID, movieID); err != nil {
		HandleAPIError(w, r, err, "Failed to add favorite")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// RemoveFavorite handles DELETE /users/{username}/movies/{movieID}.
func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	movieID, ok := h.pathMovieID(w, r)
	if !ok {
		return
	}

	if err := h.userStore.RemoveFavorite(r.Context(), caller.ID, movieID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove favorite")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// requireOwner extracts the authenticated caller and the {username} path
// parameter, and rejects the request when the caller is not the target user.
// A false return means a response has already been written.
func (h *UserHandler) requireOwner(
	w http.ResponseWriter,
	r *http.Request,
) (*domain.User, string, bool) {
	caller, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	if !ok || caller == nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, "", false
	}

	username := chi.URLParam(r, "username")
	if username == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username is required")
		return nil, "", false
	}

	// Usernames are case-sensitive, so this is an exact comparison.
	if caller.Username != username {
		shared.RespondWithError(w, r, http.StatusForbidden, "Permission denied")
		return nil, "", false
	}

	return caller, username, true
}

// pathMovieID parses the {movieID} path parameter. A false return means a
// response has already been written.
func (h *UserHandler) pathMovieID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "movieID")
	movieID, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid movie ID format")
		return uuid.Nil, false
	}
	return movieID, true
}
