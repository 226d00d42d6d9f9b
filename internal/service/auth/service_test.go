package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore is a minimal in-memory store.UserStore for service tests.
// Defined locally because internal/mocks imports this package.
type fakeUserStore struct {
	store.UserStore // panic on unimplemented methods

	byUsername map[string]*domain.User
	byID       map[uuid.UUID]*domain.User
	err        error
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{
		byUsername: make(map[string]*domain.User),
		byID:       make(map[uuid.UUID]*domain.User),
	}
	for _, u := range users {
		s.byUsername[u.Username] = u
		s.byID[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

func newTestService(t *testing.T, users store.UserStore) *Service {
	t.Helper()
	tokens, err := NewJWTService(testAuthConfig("test-jwt-secret-that-is-32-chars-ok"))
	require.NoError(t, err)
	return NewService(users, NewBcryptHasher(bcrypt.MinCost), tokens, nil)
}

func testUser(t *testing.T, username, password string) *domain.User {
	t.Helper()
	hash, err := NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)
	return &domain.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hash,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	alice := testUser(t, "alice1", "wonder123")

	t.Run("valid credentials return user and token", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, newFakeUserStore(alice))

		result, err := svc.Login(context.Background(), "alice1", "wonder123")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, alice.ID, result.User.ID)
		assert.NotEmpty(t, result.Token)

		// The issued token authenticates back to the same user.
		user, err := svc.Authenticate(context.Background(), result.Token)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
		assert.Equal(t, "alice1", user.Username)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, newFakeUserStore(alice))

		_, unknownErr := svc.Login(context.Background(), "nosuchuser", "wonder123")
		_, wrongPwErr := svc.Login(context.Background(), "alice1", "wonder124")

		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
	})

	t.Run("malformed stored hash rejects instead of erroring", func(t *testing.T) {
		t.Parallel()
		broken := testUser(t, "broken1", "whatever1")
		broken.HashedPassword = "not-a-bcrypt-hash"
		svc := newTestService(t, newFakeUserStore(broken))

		_, err := svc.Login(context.Background(), "broken1", "whatever1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure is not a rejection", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore(alice)
		users.err = errors.New("connection refused")
		svc := newTestService(t, users)

		_, err := svc.Login(context.Background(), "alice1", "wonder123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Authenticate(t *testing.T) {
	t.Parallel()

	alice := testUser(t, "alice1", "wonder123")

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, newFakeUserStore(alice))

		_, err := svc.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, newFakeUserStore(alice))

		result, err := svc.Login(context.Background(), "alice1", "wonder123")
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), result.Token+"tampered")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a foreign secret", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, newFakeUserStore(alice))

		foreignTokens, err := NewJWTService(testAuthConfig("another-jwt-secret-that-is-32-chars"))
		require.NoError(t, err)
		foreign, err := foreignTokens.GenerateToken(context.Background(), alice.ID, alice.Username)
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("deleted subject is a rejection", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore(alice)
		svc := newTestService(t, users)

		result, err := svc.Login(context.Background(), "alice1", "wonder123")
		require.NoError(t, err)

		// Simulate account deletion between issuance and verification.
		delete(users.byID, alice.ID)

		_, err = svc.Authenticate(context.Background(), result.Token)
		assert.ErrorIs(t, err, ErrUnknownSubject)
	})

	t.Run("store failure during resolution is not a rejection", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore(alice)
		svc := newTestService(t, users)

		result, err := svc.Login(context.Background(), "alice1", "wonder123")
		require.NoError(t, err)

		users.err = errors.New("connection refused")

		_, err = svc.Authenticate(context.Background(), result.Token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnknownSubject)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})
}
