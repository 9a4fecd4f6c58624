// Package google implements the server-side OAuth authorization-code flow
// against Google's endpoints.
package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Avaneesh40585/Secrets-App/config"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	domainerrors "github.com/Avaneesh40585/Secrets-App/internal/domain/errors"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
)

const (
	googleOAuthURL    = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	defaultScopes = "profile email"
	stateLifetime = 10 * time.Minute
)

// OAuthService handles Google OAuth infrastructure operations.
type OAuthService struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string
	httpClient   *http.Client

	// State storage for CSRF protection
	stateStore map[string]time.Time
	stateMutex sync.Mutex
}

// NewOAuthService creates a new Google OAuth service.
func NewOAuthService(cfg *config.Config) service.OAuthService {
	scopes := defaultScopes
	if cfg.GoogleOAuth != nil && cfg.GoogleOAuth.Scopes != "" {
		scopes = cfg.GoogleOAuth.Scopes
	}

	svc := &OAuthService{
		scopes:     scopes,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		stateStore: make(map[string]time.Time),
	}
	if cfg.GoogleOAuth != nil {
		svc.clientID = cfg.GoogleOAuth.ClientID
		svc.clientSecret = cfg.GoogleOAuth.ClientSecret
		svc.redirectURI = cfg.GoogleOAuth.RedirectURI
	}

	return svc
}

// generateState generates a cryptographically secure random state string.
func (s *OAuthService) generateState() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// storeState stores a state parameter with expiration time.
func (s *OAuthService) storeState(state string) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	s.stateStore[state] = time.Now().Add(stateLifetime)

	// Clean up expired states while we hold the lock.
	now := time.Now()
	for stored, expiry := range s.stateStore {
		if now.After(expiry) {
			delete(s.stateStore, stored)
		}
	}
}

// BuildAuthorizationURL constructs the Google OAuth authorization URL,
// minting a state parameter for CSRF protection.
func (s *OAuthService) BuildAuthorizationURL() string {
	state := s.generateState()
	s.storeState(state)

	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("redirect_uri", s.redirectURI)
	params.Set("scope", s.scopes)
	params.Set("response_type", "code")
	params.Set("state", state)

	return googleOAuthURL + "?" + params.Encode()
}

// ValidateState consumes a state parameter. A state is valid exactly once
// and only before it expires, which blocks both CSRF and replay.
func (s *OAuthService) ValidateState(state string) bool {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	expiry, exists := s.stateStore[state]
	if !exists {
		return false
	}
	delete(s.stateStore, state)

	return time.Now().Before(expiry)
}

// Provider returns the OAuth provider this service authenticates against.
func (s *OAuthService) Provider() entity.Provider {
	return entity.ProviderGoogle
}

// ExchangeCode exchanges an authorization code for an access token.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", s.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange code for token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", domainerrors.ErrOAuthFailed.WrapMessage(
			fmt.Sprintf("token exchange failed with status %d: %s", resp.StatusCode, string(body)),
		)
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}

	return tokenResponse.AccessToken, nil
}

// FetchUser retrieves the identity assertion using an access token.
func (s *OAuthService) FetchUser(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, domainerrors.ErrOAuthFailed.WrapMessage(
			fmt.Sprintf("user info request failed with status %d: %s", resp.StatusCode, string(body)),
		)
	}

	var googleUser struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		VerifiedEmail bool   `json:"verified_email"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	if googleUser.Email == "" {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("user info response carried no email claim")
	}

	return &service.OAuthUser{
		ID:            googleUser.ID,
		Email:         googleUser.Email,
		Name:          googleUser.Name,
		AvatarURL:     googleUser.Picture,
		EmailVerified: googleUser.VerifiedEmail,
		Provider:      entity.ProviderGoogle,
	}, nil
}
