package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrUsernameExists if the username is already taken and
	// ErrEmailExists if the email is already in use.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their exact, case-sensitive username.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List retrieves users ordered by username.
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// Update modifies an existing user's details.
	// If a new plaintext Password is provided, it is hashed and the stored
	// hash replaced; otherwise the existing hash is preserved.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists when renaming to a taken username.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddFavorite records a movie on the user's favorites list.
	// Adding a movie that is already a favorite is a no-op.
	// Returns ErrUserNotFound or ErrMovieNotFound when either side is missing.
	AddFavorite(ctx context.Context, userID, movieID uuid.UUID) error

	// RemoveFavorite removes a movie from the user's favorites list.
	// Removing a movie that is not a favorite is a no-op.
	RemoveFavorite(ctx context.Context, userID, movieID uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
