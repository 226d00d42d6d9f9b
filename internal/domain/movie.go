package domain

import (
	"time"

	"github.com/google/uuid"
)

// Genre describes the genre a movie belongs to.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Director describes the director of a movie.
type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

// Movie represents a single entry in the movie catalog.
type Movie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       Genre     `json:"genre"`
	Director    Director  `json:"director"`
	Actors      []string  `json:"actors"`
	ImagePath   string    `json:"image_path,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMovie creates a new Movie with the given title and description.
// It generates a new UUID for the movie ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewMovie(title, description string) (*Movie, error) {
	movie := &Movie{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := movie.Validate(); err != nil {
		return nil, err
	}

	return movie, nil
}

// Validate checks if the Movie has valid data.
// Returns an error if any field fails validation.
func (m *Movie) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMovieID
	}
	if m.Title == "" {
		return ErrEmptyMovieTitle
	}
	if m.Description == "" {
		return ErrEmptyMovieDescription
	}
	return nil
}
