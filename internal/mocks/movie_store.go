package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/store"
)

// MockMovieStore implements store.MovieStore for testing
type MockMovieStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, movie *domain.Movie) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	GetByTitleFn     func(ctx context.Context, title string) (*domain.Movie, error)
	ListFn           func(ctx context.Context, limit, offset int) ([]*domain.Movie, error)
	FindByGenreFn    func(ctx context.Context, genreName string) ([]*domain.Movie, error)
	FindByDirectorFn func(ctx context.Context, directorName string) ([]*domain.Movie, error)

	// Data for default implementation, keyed by title
	Movies map[string]*domain.Movie

	// Error returned by the default implementations when set
	Err error
}

// NewMockMovieStore creates a new mock store with initialized defaults
func NewMockMovieStore() *MockMovieStore {
	return &MockMovieStore{
		Movies: make(map[string]*domain.Movie),
	}
}

var _ store.MovieStore = (*MockMovieStore)(nil)

// Create implements the MovieStore interface
func (m *MockMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, movie)
	}
	if m.Err != nil {
		return m.Err
	}
	m.Movies[movie.Title] = movie
	return nil
}

// GetByID implements the MovieStore interface
func (m *MockMovieStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for _, movie := range m.Movies {
		if movie.ID == id {
			return movie, nil
		}
	}
	return nil, store.ErrMovieNotFound
}

// GetByTitle implements the MovieStore interface
func (m *MockMovieStore) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	if m.GetByTitleFn != nil {
		return m.GetByTitleFn(ctx, title)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	movie, exists := m.Movies[title]
	if !exists {
		return nil, store.ErrMovieNotFound
	}
	return movie, nil
}

// List implements the MovieStore interface
func (m *MockMovieStore) List(ctx context.Context, limit, offset int) ([]*domain.Movie, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	movies := make([]*domain.Movie, 0, len(m.Movies))
	for _, movie := range m.Movies {
		movies = append(movies, movie)
	}
	return movies, nil
}

// FindByGenre implements the MovieStore interface
func (m *MockMovieStore) FindByGenre(ctx context.Context, genreName string) ([]*domain.Movie, error) {
	if m.FindByGenreFn != nil {
		return m.FindByGenreFn(ctx, genreName)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	movies := []*domain.Movie{}
	for _, movie := range m.Movies {
		if movie.Genre.Name == genreName {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

// FindByDirector implements the MovieStore interface
func (m *MockMovieStore) FindByDirector(ctx context.Context, directorName string) ([]*domain.Movie, error) {
	if m.FindByDirectorFn != nil {
		return m.FindByDirectorFn(ctx, directorName)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	movies := []*domain.Movie{}
	for _, movie := range m.Movies {
		if movie.Director.Name == directorName {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

// WithTx implements the MovieStore interface; the mock ignores transactions.
func (m *MockMovieStore) WithTx(tx *sql.Tx) store.MovieStore {
	return m
}
