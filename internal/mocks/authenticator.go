package mocks

import (
	"context"

	"github.com/myflix/myflix-api/internal/domain"
)

// MockAuthenticator implements auth.Authenticator for testing
type MockAuthenticator struct {
	// AuthenticateFn allows test cases to mock the Authenticate behavior
	AuthenticateFn func(ctx context.Context, rawToken string) (*domain.User, error)

	// Default values used when AuthenticateFn isn't defined
	User *domain.User
	Err  error
}

// Authenticate implements the auth.Authenticator interface
func (m *MockAuthenticator) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, rawToken)
	}
	return m.User, m.Err
}
