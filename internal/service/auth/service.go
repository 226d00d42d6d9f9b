package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/platform/logger"
	"github.com/myflix/myflix-api/internal/store"
)

// Authenticator resolves a raw bearer token to the user it was issued for.
// It is the interface the HTTP middleware depends on.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
}

// Service composes credential verification, token issuance and token-based
// authentication. The API layer delegates to it and only maps its errors to
// HTTP responses.
type Service struct {
	users  store.UserStore
	hasher PasswordHasher
	tokens JWTService
	logger *slog.Logger
}

// LoginResult is the outcome of a successful login: the authenticated user
// record and a freshly issued bearer token.
type LoginResult struct {
	User  *domain.User
	Token string
}

// Ensure Service satisfies the Authenticator interface
var _ Authenticator = (*Service)(nil)

// NewService creates a new authentication Service with the given
// collaborators. If log is nil, the default logger is used.
func NewService(
	users store.UserStore,
	hasher PasswordHasher,
	tokens JWTService,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: log.With(slog.String("component", "auth_service")),
	}
}

// Login verifies the supplied credentials and, on success, issues a bearer
// token. Unknown usernames and wrong passwords both return
// ErrInvalidCredentials; a caller cannot tell the two apart. Store failures
// are returned wrapped and are never reported as a credential rejection.
// The flow performs exactly one persistence read and no retries.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login rejected", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		// Mismatch and malformed stored hash are the same rejection.
		log.Debug("login rejected", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("login succeeded",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return &LoginResult{User: user, Token: token}, nil
}

// Authenticate validates a raw bearer token and resolves it to the user it
// was issued for.
//
// Rejections are sentinel errors: ErrMissingToken (no credential supplied),
// ErrInvalidToken (tampered/malformed), ErrExpiredToken, and ErrUnknownSubject
// (valid token whose user record no longer exists). Store failures during
// subject resolution are returned wrapped, distinct from every rejection, so
// callers can map them to a 5xx instead of a 401.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if rawToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.tokens.ValidateToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token subject not found",
				slog.String("user_id", claims.UserID.String()),
				slog.String("token_id", claims.ID))
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return user, nil
}
