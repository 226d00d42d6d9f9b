package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/platform/logger"
	"github.com/myflix/myflix-api/internal/store"
)

// PostgresMovieStore implements the store.MovieStore interface
// using a PostgreSQL database as the storage backend.
//
// The actors list is stored as a JSONB column; genre and director are
// flattened into dedicated columns so they can be indexed for the
// genre/director lookup endpoints.
type PostgresMovieStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMovieStore creates a new PostgreSQL implementation of the
// MovieStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMovieStore(db store.DBTX, logger *slog.Logger) *PostgresMovieStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMovieStore{
		db:     db,
		logger: logger.With(slog.String("component", "movie_store")),
	}
}

// Ensure PostgresMovieStore implements store.MovieStore interface
var _ store.MovieStore = (*PostgresMovieStore)(nil)

const movieColumns = `
	id, title, description,
	genre_name, genre_description,
	director_name, director_bio,
	actors, image_path, featured,
	created_at, updated_at
`

// Create implements store.MovieStore.Create
// Returns validation errors from the domain Movie if data is invalid and
// store.ErrDuplicate if a movie with the same title already exists.
func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := movie.Validate(); err != nil {
		log.Warn("movie validation failed during create",
			slog.String("error", err.Error()),
			slog.String("movie_id", movie.ID.String()))
		return err
	}

	actors, err := json.Marshal(movie.Actors)
	if err != nil {
		return fmt.Errorf("failed to marshal actors: %w", err)
	}

	query := `
		INSERT INTO movies (
			id, title, description,
			genre_name, genre_description,
			director_name, director_bio,
			actors, image_path, featured,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre.Name,
		movie.Genre.Description,
		movie.Director.Name,
		movie.Director.Bio,
		actors,
		movie.ImagePath,
		movie.Featured,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		mapped := MapError(err)
		if IsUniqueViolation(err) {
			log.Warn("duplicate movie during create",
				slog.String("title", movie.Title),
				slog.String("movie_id", movie.ID.String()))
			return mapped
		}
		log.Error("failed to create movie",
			slog.String("error", err.Error()),
			slog.String("movie_id", movie.ID.String()))
		return mapped
	}

	log.Info("movie created successfully",
		slog.String("movie_id", movie.ID.String()),
		slog.String("title", movie.Title))
	return nil
}

// GetByID implements store.MovieStore.GetByID
// Returns store.ErrMovieNotFound if the movie does not exist.
func (s *PostgresMovieStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("movie not found", slog.String("movie_id", id.String()))
			return nil, store.ErrMovieNotFound
		}
		log.Error("failed to get movie by ID",
			slog.String("error", err.Error()),
			slog.String("movie_id", id.String()))
		return nil, err
	}

	return movie, nil
}

// GetByTitle implements store.MovieStore.GetByTitle
// The lookup is exact. Returns store.ErrMovieNotFound if no movie carries
// that title.
func (s *PostgresMovieStore) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + movieColumns + ` FROM movies WHERE title = $1`

	movie, err := scanMovie(s.db.QueryRowContext(ctx, query, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("movie not found", slog.String("title", title))
			return nil, store.ErrMovieNotFound
		}
		log.Error("failed to get movie by title",
			slog.String("error", err.Error()),
			slog.String("title", title))
		return nil, err
	}

	return movie, nil
}

// List implements store.MovieStore.List
// Movies are ordered by title.
func (s *PostgresMovieStore) List(ctx context.Context, limit, offset int) ([]*domain.Movie, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY title LIMIT $1 OFFSET $2`

	return s.queryMovies(ctx, query, limit, offset)
}

// FindByGenre implements store.MovieStore.FindByGenre
// Returns an empty slice if no movies match.
func (s *PostgresMovieStore) FindByGenre(
	ctx context.Context,
	genreName string,
) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE genre_name = $1 ORDER BY title`

	return s.queryMovies(ctx, query, genreName)
}

// FindByDirector implements store.MovieStore.FindByDirector
// Returns an empty slice if no movies match.
func (s *PostgresMovieStore) FindByDirector(
	ctx context.Context,
	directorName string,
) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE director_name = $1 ORDER BY title`

	return s.queryMovies(ctx, query, directorName)
}

// WithTx implements store.MovieStore.WithTx
// It returns a new MovieStore instance that uses the provided transaction.
func (s *PostgresMovieStore) WithTx(tx *sql.Tx) store.MovieStore {
	return &PostgresMovieStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryMovies runs a query returning movie rows and scans them all.
func (s *PostgresMovieStore) queryMovies(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query movies", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	movies := []*domain.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			log.Error("failed to scan movie row", slog.String("error", err.Error()))
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return movies, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMovie reads one movie row, decoding the JSONB actors column.
func scanMovie(row rowScanner) (*domain.Movie, error) {
	var movie domain.Movie
	var actors []byte

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&movie.Director.Name,
		&movie.Director.Bio,
		&actors,
		&movie.ImagePath,
		&movie.Featured,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(actors) > 0 {
		if err := json.Unmarshal(actors, &movie.Actors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal actors: %w", err)
		}
	}

	return &movie, nil
}
