package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/mocks"
	"github.com/myflix/myflix-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMovieStore(t *testing.T) *mocks.MockMovieStore {
	t.Helper()

	movieStore := mocks.NewMockMovieStore()
	inception, err := domain.NewMovie("Inception", "A thief who steals corporate secrets.")
	require.NoError(t, err)
	inception.Genre = domain.Genre{Name: "Thriller"}
	inception.Director = domain.Director{Name: "Christopher Nolan"}

	interstellar, err := domain.NewMovie("Interstellar", "Explorers travel through a wormhole.")
	require.NoError(t, err)
	interstellar.Genre = domain.Genre{Name: "Science Fiction"}
	interstellar.Director = domain.Director{Name: "Christopher Nolan"}

	movieStore.Movies[inception.Title] = inception
	movieStore.Movies[interstellar.Title] = interstellar
	return movieStore
}

func TestListMovies(t *testing.T) {
	t.Parallel()

	t.Run("returns catalog", func(t *testing.T) {
		t.Parallel()

		handler := NewMovieHandler(seedMovieStore(t))

		req := httptest.NewRequest("GET", "/movies", nil)
		recorder := httptest.NewRecorder()

		handler.ListMovies(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var movies []*domain.Movie
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movies))
		assert.Len(t, movies, 2)
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Parallel()

		handler := NewMovieHandler(seedMovieStore(t))

		req := httptest.NewRequest("GET", "/movies?limit=abc", nil)
		recorder := httptest.NewRecorder()

		handler.ListMovies(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("negative offset", func(t *testing.T) {
		t.Parallel()

		handler := NewMovieHandler(seedMovieStore(t))

		req := httptest.NewRequest("GET", "/movies?offset=-5", nil)
		recorder := httptest.NewRecorder()

		handler.ListMovies(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetMovie(t *testing.T) {
	t.Parallel()

	movieStore := seedMovieStore(t)
	inception := movieStore.Movies["Inception"]
	handler := NewMovieHandler(movieStore)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{
			name:       "existing movie",
			id:         inception.ID.String(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown movie",
			id:         uuid.New().String(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed ID",
			id:         "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := newAuthedRequest(t, "GET", "/movies/"+tt.id, nil, nil,
				map[string]string{"id": tt.id})
			recorder := httptest.NewRecorder()

			handler.GetMovie(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var movie domain.Movie
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movie))
				assert.Equal(t, "Inception", movie.Title)
			}
		})
	}
}

func TestGetMovieByTitle(t *testing.T) {
	t.Parallel()

	handler := NewMovieHandler(seedMovieStore(t))

	t.Run("existing title", func(t *testing.T) {
		t.Parallel()

		req := newAuthedRequest(t, "GET", "/movies/title/Inception", nil, nil,
			map[string]string{"title": "Inception"})
		recorder := httptest.NewRecorder()

		handler.GetMovieByTitle(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var movie domain.Movie
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movie))
		assert.Equal(t, "Thriller", movie.Genre.Name)
	})

	t.Run("unknown title", func(t *testing.T) {
		t.Parallel()

		req := newAuthedRequest(t, "GET", "/movies/title/Unknown", nil, nil,
			map[string]string{"title": "Unknown"})
		recorder := httptest.NewRecorder()

		handler.GetMovieByTitle(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListByGenre(t *testing.T) {
	t.Parallel()

	handler := NewMovieHandler(seedMovieStore(t))

	t.Run("matching genre", func(t *testing.T) {
		t.Parallel()

		req := newAuthedRequest(t, "GET", "/movies/genres/Thriller", nil, nil,
			map[string]string{"name": "Thriller"})
		recorder := httptest.NewRecorder()

		handler.ListByGenre(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var movies []*domain.Movie
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movies))
		require.Len(t, movies, 1)
		assert.Equal(t, "Inception", movies[0].Title)
	})

	t.Run("unknown genre yields empty list, not 404", func(t *testing.T) {
		t.Parallel()

		req := newAuthedRequest(t, "GET", "/movies/genres/Western", nil, nil,
			map[string]string{"name": "Western"})
		recorder := httptest.NewRecorder()

		handler.ListByGenre(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var movies []*domain.Movie
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movies))
		assert.Empty(t, movies)
	})
}

func TestListByDirector(t *testing.T) {
	t.Parallel()

	handler := NewMovieHandler(seedMovieStore(t))

	req := newAuthedRequest(t, "GET", "/directors/Christopher%20Nolan", nil, nil,
		map[string]string{"name": "Christopher Nolan"})
	recorder := httptest.NewRecorder()

	handler.ListByDirector(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var movies []*domain.Movie
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movies))
	assert.Len(t, movies, 2)
}

func TestCreateMovie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid movie",
			payload: map[string]interface{}{
				"title":       "Dunkirk",
				"description": "Allied soldiers are evacuated during a fierce battle.",
				"genre":       map[string]string{"name": "War"},
				"director":    map[string]string{"name": "Christopher Nolan"},
				"actors":      []string{"Fionn Whitehead"},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing title",
			payload: map[string]interface{}{
				"description": "No title supplied.",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing description",
			payload: map[string]interface{}{
				"title": "Dunkirk",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			movieStore := mocks.NewMockMovieStore()
			handler := NewMovieHandler(movieStore)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/movies", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.CreateMovie(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var movie domain.Movie
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&movie))
				assert.Equal(t, "Dunkirk", movie.Title)
				assert.NotEqual(t, uuid.Nil, movie.ID)
				assert.Contains(t, movieStore.Movies, "Dunkirk")
			}
		})
	}

	t.Run("duplicate title is a conflict", func(t *testing.T) {
		t.Parallel()

		movieStore := mocks.NewMockMovieStore()
		movieStore.CreateFn = func(ctx context.Context, movie *domain.Movie) error {
			return fmt.Errorf("%w: %v", store.ErrDuplicate,
				`duplicate key value violates unique constraint "movies_title_key"`)
		}
		handler := NewMovieHandler(movieStore)

		payloadBytes, err := json.Marshal(map[string]interface{}{
			"title":       "Dunkirk",
			"description": "Allied soldiers are evacuated during a fierce battle.",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/movies", bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		handler.CreateMovie(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Resource already exists")
		assert.NotContains(t, recorder.Body.String(), "movies_title_key")
	})
}
