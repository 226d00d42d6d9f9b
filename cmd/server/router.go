package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/myflix/myflix-api/internal/api"
	apiMiddleware "github.com/myflix/myflix-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Everything except login, registration and the health check
// sits behind the bearer-token middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewCORSMiddleware(app.config.Server.AllowedOrigins))
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.authService)
	userHandler := api.NewUserHandler(app.userStore)
	movieHandler := api.NewMovieHandler(app.movieStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	// Public endpoints
	r.Post("/login", authHandler.Login)
	r.Post("/users", userHandler.Register)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Movie catalog
		r.Get("/movies", movieHandler.ListMovies)
		r.Post("/movies", movieHandler.CreateMovie)
		r.Get("/movies/{id}", movieHandler.GetMovie)
		r.Get("/movies/title/{title}", movieHandler.GetMovieByTitle)
		r.Get("/movies/genres/{name}", movieHandler.ListByGenre)
		r.Get("/directors/{name}", movieHandler.ListByDirector)

		// User accounts and favorites
		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{username}", userHandler.GetUser)
		r.Put("/users/{username}", userHandler.UpdateUser)
		r.Delete("/users/{username}", userHandler.DeleteUser)
		r.Post("/users/{username}/movies/{movieID}", userHandler.AddFavorite)
		r.Delete("/users/{username}/movies/{movieID}", userHandler.RemoveFavorite)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
