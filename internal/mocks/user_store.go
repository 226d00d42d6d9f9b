package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*domain.User, error)
	ListFn           func(ctx context.Context, limit, offset int) ([]*domain.User, error)
	UpdateFn         func(ctx context.Context, user *domain.User) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	AddFavoriteFn    func(ctx context.Context, userID, movieID uuid.UUID) error
	RemoveFavoriteFn func(ctx context.Context, userID, movieID uuid.UUID) error

	// Data for default implementation, keyed by username
	Users map[string]*domain.User

	// Errors returned by the default implementations when set
	CreateError error
	GetError    error
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.Users[user.Username]; exists {
		return store.ErrUsernameExists
	}
	m.Users[user.Username] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	user, exists := m.Users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	for username, existing := range m.Users {
		if existing.ID == user.ID {
			delete(m.Users, username)
			m.Users[user.Username] = user
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	for username, existing := range m.Users {
		if existing.ID == id {
			delete(m.Users, username)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// AddFavorite implements the UserStore interface
func (m *MockUserStore) AddFavorite(ctx context.Context, userID, movieID uuid.UUID) error {
	if m.AddFavoriteFn != nil {
		return m.AddFavoriteFn(ctx, userID, movieID)
	}
	user, err := m.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range user.FavoriteMovies {
		if id == movieID {
			return nil
		}
	}
	user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	return nil
}

// RemoveFavorite implements the UserStore interface
func (m *MockUserStore) RemoveFavorite(ctx context.Context, userID, movieID uuid.UUID) error {
	if m.RemoveFavoriteFn != nil {
		return m.RemoveFavoriteFn(ctx, userID, movieID)
	}
	user, err := m.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	kept := user.FavoriteMovies[:0]
	for _, id := range user.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	user.FavoriteMovies = kept
	return nil
}

// WithTx implements the UserStore interface; the mock ignores transactions.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
