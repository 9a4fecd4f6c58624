package service

import (
	"context"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
)

// OAuthUser represents the identity assertion obtained from an OAuth provider.
type OAuthUser struct {
	ID            string          // Provider-specific user ID (e.g. Google's 'sub' claim)
	Email         string          // Asserted email address, the local join key
	Name          string          // Display name, informational only
	AvatarURL     string          // Profile picture URL, informational only
	EmailVerified bool            // Whether the provider vouches for the email
	Provider      entity.Provider // The provider that issued the assertion
}

// OAuthService defines the server-side authorization-code flow against an
// external identity provider.
type OAuthService interface {
	// BuildAuthorizationURL constructs the provider's consent URL, minting and
	// remembering a fresh state parameter for CSRF protection.
	BuildAuthorizationURL() string

	// ValidateState consumes a state parameter returned by the provider.
	// A state is valid exactly once and only before it expires.
	ValidateState(state string) bool

	// ExchangeCode trades an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchUser retrieves the identity assertion using an access token.
	FetchUser(ctx context.Context, accessToken string) (*OAuthUser, error)

	// Provider returns the provider this service authenticates against.
	Provider() entity.Provider
}
