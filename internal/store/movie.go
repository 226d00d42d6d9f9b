package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
)

// MovieStore defines the interface for movie catalog persistence.
type MovieStore interface {
	// Create saves a new movie to the catalog.
	// Returns validation errors from the domain Movie if data is invalid.
	Create(ctx context.Context, movie *domain.Movie) error

	// GetByID retrieves a movie by its unique ID.
	// Returns ErrMovieNotFound if the movie does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error)

	// GetByTitle retrieves a movie by its exact title.
	// Returns ErrMovieNotFound if no movie carries that title.
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)

	// List retrieves movies ordered by title.
	List(ctx context.Context, limit, offset int) ([]*domain.Movie, error)

	// FindByGenre retrieves all movies belonging to the named genre.
	// Returns an empty slice if no movies match.
	FindByGenre(ctx context.Context, genreName string) ([]*domain.Movie, error)

	// FindByDirector retrieves all movies by the named director.
	// Returns an empty slice if no movies match.
	FindByDirector(ctx context.Context, directorName string) ([]*domain.Movie, error)

	// WithTx returns a new MovieStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) MovieStore
}
