package mocks

import (
	"errors"

	"github.com/myflix/myflix-api/internal/service/auth"
)

// ErrMockHashMismatch is returned by MockPasswordHasher.Compare on mismatch.
var ErrMockHashMismatch = errors.New("mock hash mismatch")

// MockPasswordHasher implements auth.PasswordHasher for testing.
// The default behavior "hashes" by prefixing, keeping tests fast and
// deterministic without bcrypt's CPU cost.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	HashErr error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return ErrMockHashMismatch
	}
	return nil
}
