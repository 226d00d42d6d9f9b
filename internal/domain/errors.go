package domain

import "errors"

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooShort    = errors.New("username must be at least 5 characters long")
	ErrInvalidUsername     = errors.New("username may only contain letters and digits")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	ErrEmptyMovieID          = errors.New("movie ID cannot be empty")
	ErrEmptyMovieTitle       = errors.New("movie title cannot be empty")
	ErrEmptyMovieDescription = errors.New("movie description cannot be empty")
)
