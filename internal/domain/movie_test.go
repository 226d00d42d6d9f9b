package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMovie(t *testing.T) {
	movie, err := NewMovie("The Matrix", "A hacker discovers the nature of reality.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if movie.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if movie.Title != "The Matrix" {
		t.Errorf("Expected title %q, got %q", "The Matrix", movie.Title)
	}
	if movie.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if _, err = NewMovie("", "desc"); err != ErrEmptyMovieTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyMovieTitle, err)
	}
	if _, err = NewMovie("Title", ""); err != ErrEmptyMovieDescription {
		t.Errorf("Expected error %v, got %v", ErrEmptyMovieDescription, err)
	}
}

func TestMovieValidate(t *testing.T) {
	movie := Movie{
		ID:          uuid.New(),
		Title:       "Spirited Away",
		Description: "A girl wanders into a world of spirits.",
		Genre:       Genre{Name: "Animation"},
		Director:    Director{Name: "Hayao Miyazaki"},
	}

	if err := movie.Validate(); err != nil {
		t.Errorf("Expected no error for valid movie, got %v", err)
	}

	noID := movie
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrEmptyMovieID {
		t.Errorf("Expected error %v, got %v", ErrEmptyMovieID, err)
	}
}
