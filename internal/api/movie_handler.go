package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/myflix/myflix-api/internal/api/shared"
	"github.com/myflix/myflix-api/internal/domain"
	"github.com/myflix/myflix-api/internal/store"
)

const (
	defaultMovieLimit = 50
	maxMovieLimit     = 200
)

// MovieHandler handles movie catalog API requests. Every route it serves
// sits behind the bearer-token middleware.
type MovieHandler struct {
	movieStore store.MovieStore
}

// NewMovieHandler creates a new MovieHandler with the given dependencies.
func NewMovieHandler(movieStore store.MovieStore) *MovieHandler {
	return &MovieHandler{
		movieStore: movieStore,
	}
}

// ListMovies handles GET /movies with optional limit/offset query parameters.
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}

	movies, err := h.movieStore.List(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list movies")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, movies)
}

// GetMovie handles GET /movies/{id}.
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid movie ID format")
		return
	}

	movie, err := h.movieStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get movie")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, movie)
}

// GetMovieByTitle handles GET /movies/title/{title}. The title is matched
// exactly after URL decoding.
func (h *MovieHandler) GetMovieByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if title == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
		return
	}

	movie, err := h.movieStore.GetByTitle(r.Context(), title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get movie")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, movie)
}

// ListByGenre handles GET /movies/genres/{name}. An unknown genre yields an
// empty list, not a 404.
func (h *MovieHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Genre name is required")
		return
	}

	movies, err := h.movieStore.FindByGenre(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list movies by genre")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, movies)
}

// ListByDirector handles GET /directors/{name}.
func (h *MovieHandler) ListByDirector(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Director name is required")
		return
	}

	movies, err := h.movieStore.FindByDirector(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list movies by director")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, movies)
}

// CreateMovie handles POST /movies, adding a new title to the catalog.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	movie, err := domain.NewMovie(req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid movie data")
		return
	}
	movie.Genre = domain.Genre{Name: req.Genre.Name, Description: req.Genre.Description}
	movie.Director = domain.Director{Name: req.Director.Name, Bio: req.Director.Bio}
	movie.Actors = req.Actors
	movie.ImagePath = req.ImagePath
	movie.Featured = req.Featured

	if err := h.movieStore.Create(r.Context(), movie); err != nil {
		HandleAPIError(w, r, err, "Failed to create movie")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, movie)
}

// parsePagination reads limit/offset query parameters, applying defaults and
// bounds. A false return means a response has already been written.
func parsePagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit = defaultMovieLimit
	offset = 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return 0, 0, false
		}
		if parsed > maxMovieLimit {
			parsed = maxMovieLimit
		}
		limit = parsed
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid offset parameter")
			return 0, 0, false
		}
		offset = parsed
	}

	return limit, offset, true
}
