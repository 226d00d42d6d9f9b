package auth

import "github.com/myflix/myflix-api/internal/config"

// testAuthConfig returns an AuthConfig with the given secret and the
// canonical 24h token lifetime.
func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 1440,
		BcryptCost:           10,
	}
}
