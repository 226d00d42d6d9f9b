package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
)

// Common request/response structures

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string     `json:"username" validate:"required,min=5,alphanum"`
	Email    string     `json:"email"    validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// UpdateUserRequest defines the payload for the user update endpoint.
// All fields are optional; absent fields keep their stored values.
type UpdateUserRequest struct {
	Username string     `json:"username,omitempty" validate:"omitempty,min=5,alphanum"`
	Email    string     `json:"email,omitempty"    validate:"omitempty,email"`
	Password string     `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// CreateMovieRequest defines the payload for adding a movie to the catalog.
type CreateMovieRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
	Actors      []string `json:"actors"`
	ImagePath   string   `json:"image_path"`
	Featured    bool     `json:"featured"`
}

// Genre mirrors domain.Genre for request payloads.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Director mirrors domain.Director for request payloads.
type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

// UserResponse is the outward-facing representation of a user.
// It is constructed field by field so credential material can never leak
// into a response by accident.
type UserResponse struct {
	ID             uuid.UUID   `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Birthday       *time.Time  `json:"birthday,omitempty"`
	FavoriteMovies []uuid.UUID `json:"favorite_movies"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewUserResponse converts a domain user to its response representation.
func NewUserResponse(user *domain.User) UserResponse {
	favorites := user.FavoriteMovies
	if favorites == nil {
		favorites = []uuid.UUID{}
	}
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Birthday:       user.Birthday,
		FavoriteMovies: favorites,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	User UserResponse `json:"user"`

	// Token is the bearer token for subsequent requests
	Token string `json:"token"`
}
