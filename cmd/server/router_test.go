package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myflix/myflix-api/internal/config"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/mocks"
	"github.com/myflix/myflix-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication wires the router against in-memory stores and a real
// JWT service, so issued tokens round-trip through the middleware.
func newTestApplication(t *testing.T) (*application, *mocks.MockUserStore, *mocks.MockMovieStore) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			LogLevel:       "error",
			AllowedOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-key-thats-long-enough-for-hmac",
			TokenLifetimeMinutes: 60,
		},
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	userStore := mocks.NewMockUserStore()
	movieStore := mocks.NewMockMovieStore()
	hasher := &mocks.MockPasswordHasher{}

	app := &application{
		config:      cfg,
		logger:      slog.Default(),
		userStore:   userStore,
		movieStore:  movieStore,
		jwtService:  jwtService,
		hasher:      hasher,
		authService: auth.NewService(userStore, hasher, jwtService, slog.Default()),
	}
	return app, userStore, movieStore
}

func seedUser(t *testing.T, userStore *mocks.MockUserStore) *domain.User {
	t.Helper()

	user, err := domain.NewUser("alice1", "alice@example.com", "wonder123")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "hashed:wonder123"
	userStore.Users[user.Username] = user
	return user
}

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"username": "alice1",
		"password": "wonder123",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouterHealthCheck(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func TestRouterLoginThenBrowseCatalog(t *testing.T) {
	t.Parallel()

	app, userStore, movieStore := newTestApplication(t)
	seedUser(t, userStore)

	movie, err := domain.NewMovie("Inception", "A thief who steals corporate secrets.")
	require.NoError(t, err)
	movieStore.Movies[movie.Title] = movie

	router := app.setupRouter()
	token := loginToken(t, router)

	req := httptest.NewRequest("GET", "/movies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var movies []*domain.Movie
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movies))
	assert.Len(t, movies, 1)
}

func TestRouterCatalogRequiresToken(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	paths := []string{
		"/movies",
		"/movies/title/Inception",
		"/movies/genres/Thriller",
		"/directors/Christopher%20Nolan",
		"/users/alice1",
	}

	for _, path := range paths {
		req := httptest.NewRequest("GET", path, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "path %s", path)
	}
}

func TestRouterRegistrationIsPublic(t *testing.T) {
	t.Parallel()

	app, userStore, _ := newTestApplication(t)
	router := app.setupRouter()

	body, err := json.Marshal(map[string]string{
		"username": "bobby1",
		"email":    "bob@example.com",
		"password": "builder123",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, userStore.Users, "bobby1")
}

func TestRouterOwnershipEnforced(t *testing.T) {
	t.Parallel()

	app, userStore, _ := newTestApplication(t)
	seedUser(t, userStore)

	router := app.setupRouter()
	token := loginToken(t, router)

	req := httptest.NewRequest("GET", "/users/bobby1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRouterTamperedTokenRejected(t *testing.T) {
	t.Parallel()

	app, userStore, _ := newTestApplication(t)
	seedUser(t, userStore)

	router := app.setupRouter()
	token := loginToken(t, router)

	req := httptest.NewRequest("GET", "/movies", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
