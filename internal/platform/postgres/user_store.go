package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/platform/logger"
	"github.com/myflix/myflix-api/internal/service/auth"
	"github.com/myflix/myflix-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller, and the hasher used to
// hash plaintext passwords before they are persisted.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(
	db store.DBTX,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user to the database, hashing the plaintext password first.
// Returns store.ErrUsernameExists or store.ErrEmailExists on the respective
// unique constraint violations, and validation errors from the domain User
// if data is invalid.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	query := `
		INSERT INTO users (id, username, email, hashed_password, birthday, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.Birthday,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		mapped := MapError(err)
		if IsUniqueViolation(err) {
			log.Warn("duplicate user during create",
				slog.String("username", user.Username),
				slog.String("user_id", user.ID.String()))
			return mapped
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return mapped
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, hashed_password, birthday, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := s.scanUser(ctx, s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// GetByUsername implements store.UserStore.GetByUsername
// The lookup is exact and case-sensitive.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, hashed_password, birthday, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	user, err := s.scanUser(ctx, s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	return user, nil
}

// List implements store.UserStore.List
// Users are ordered by username. Returns an empty slice when the range is
// past the end of the table.
func (s *PostgresUserStore) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, username, email, hashed_password, birthday, created_at, updated_at
		FROM users
		ORDER BY username
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var birthday sql.NullTime
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.HashedPassword,
			&birthday,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		if birthday.Valid {
			user.Birthday = &birthday.Time
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	for _, user := range users {
		favorites, err := s.loadFavorites(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.FavoriteMovies = favorites
	}

	if users == nil {
		users = []*domain.User{}
	}

	return users, nil
}

// Update implements store.UserStore.Update
// If a new plaintext Password is set, it is hashed and the stored hash
// replaced; otherwise the hash already on the user is written back.
// Returns store.ErrUserNotFound if the user does not exist and
// store.ErrUsernameExists / store.ErrEmailExists when renaming collides.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET username = $1, email = $2, hashed_password = $3, birthday = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.Birthday,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		mapped := MapError(err)
		if IsUniqueViolation(err) {
			log.Warn("duplicate user during update",
				slog.String("username", user.Username),
				slog.String("user_id", user.ID.String()))
			return mapped
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return mapped
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		if IsNotFoundError(err) {
			log.Debug("user not found for update", slog.String("user_id", user.ID.String()))
			return store.ErrUserNotFound
		}
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user updated successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// Delete implements store.UserStore.Delete
// Favorites rows are removed by the ON DELETE CASCADE on the join table.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		if IsNotFoundError(err) {
			log.Debug("user not found for delete", slog.String("user_id", id.String()))
			return store.ErrUserNotFound
		}
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	log.Info("user deleted successfully", slog.String("user_id", id.String()))
	return nil
}

// AddFavorite implements store.UserStore.AddFavorite
// Adding a movie that is already a favorite is a no-op.
// Returns store.ErrUserNotFound or store.ErrMovieNotFound when either side
// of the relation is missing.
func (s *PostgresUserStore) AddFavorite(ctx context.Context, userID, movieID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_favorite_movies (user_id, movie_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query, userID, movieID, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if IsForeignKeyViolation(err) && errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case favoritesUserConstraint:
				log.Debug("user not found for favorite",
					slog.String("user_id", userID.String()))
				return store.ErrUserNotFound
			case favoritesMovieConstraint:
				log.Debug("movie not found for favorite",
					slog.String("movie_id", movieID.String()))
				return store.ErrMovieNotFound
			}
		}
		log.Error("failed to add favorite",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("movie_id", movieID.String()))
		return MapError(err)
	}

	log.Info("favorite added",
		slog.String("user_id", userID.String()),
		slog.String("movie_id", movieID.String()))
	return nil
}

// RemoveFavorite implements store.UserStore.RemoveFavorite
// Removing a movie that is not a favorite is a no-op.
func (s *PostgresUserStore) RemoveFavorite(ctx context.Context, userID, movieID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM user_favorite_movies
		WHERE user_id = $1 AND movie_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		log.Error("failed to remove favorite",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("movie_id", movieID.String()))
		return err
	}

	log.Info("favorite removed",
		slog.String("user_id", userID.String()),
		slog.String("movie_id", movieID.String()))
	return nil
}

// WithTx implements store.UserStore.WithTx
// It returns a new UserStore instance that uses the provided transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		hasher: s.hasher,
		logger: s.logger,
	}
}

// scanUser reads one user row and attaches the favorites list.
func (s *PostgresUserStore) scanUser(ctx context.Context, row *sql.Row) (*domain.User, error) {
	var user domain.User
	var birthday sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&birthday,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if birthday.Valid {
		user.Birthday = &birthday.Time
	}

	favorites, err := s.loadFavorites(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.FavoriteMovies = favorites

	return &user, nil
}

// loadFavorites returns the user's favorite movie IDs in insertion order.
func (s *PostgresUserStore) loadFavorites(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	query := `
		SELECT movie_id
		FROM user_favorite_movies
		WHERE user_id = $1
		ORDER BY added_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	favorites := []uuid.UUID{}
	for rows.Next() {
		var movieID uuid.UUID
		if err := rows.Scan(&movieID); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites = append(favorites, movieID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning favorites: %w", err)
	}

	return favorites, nil
}
