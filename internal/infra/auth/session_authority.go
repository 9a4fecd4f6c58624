package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Avaneesh40585/Secrets-App/config"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// jwtSessionAuthority implements SessionAuthority with signed HS256 tokens
// backed by stored session rows. The payload is the account ID plus a token
// ID: no email, no hash. The token only resolves while its row is live, so
// logout revokes it server-side instead of waiting for expiry.
type jwtSessionAuthority struct {
	secret   []byte
	ttl      time.Duration
	sessions repository.SessionRepository
}

// NewSessionAuthority is the constructor for jwtSessionAuthority.
func NewSessionAuthority(cfg *config.Config, sessions repository.SessionRepository) (service.SessionAuthority, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	ttl := cfg.Session.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &jwtSessionAuthority{
		secret:   []byte(cfg.Session.Secret),
		ttl:      ttl,
		sessions: sessions,
	}, nil
}

// Establish mints a session token whose subject is the account ID and
// records the backing session row.
func (s *jwtSessionAuthority) Establish(ctx context.Context, accountID uuid.UUID) (string, error) {
	now := time.Now()
	session := &entity.Session{
		TokenID:   uuid.New(),
		AccountID: accountID,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", errors.Wrap(err, "failed to record session")
	}

	claims := jwt.MapClaims{
		"sub": accountID.String(),
		"jti": session.TokenID.String(),
		"iat": now.Unix(),
		"exp": session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Resolve extracts the account ID from a session token. Every way a token
// can be bad (expired, tampered, wrong algorithm, malformed claims, revoked)
// is the same answer: no session. A store failure is a server fault and is
// reported as such, never as a silent anonymous.
func (s *jwtSessionAuthority) Resolve(ctx context.Context, tokenString string) (uuid.UUID, error) {
	accountID, tokenID, err := s.parse(tokenString)
	if err != nil {
		return uuid.Nil, service.ErrNoSession
	}

	if _, err := s.sessions.FindByTokenID(ctx, tokenID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return uuid.Nil, service.ErrNoSession
		}

		return uuid.Nil, errors.Wrap(err, "failed to look up session")
	}

	return accountID, nil
}

// Revoke deletes the session row behind the token. A token that carries no
// live session (already logged out, tampered, expired) is a no-op; only a
// store failure is an error, and the caller must still clear its cookie.
func (s *jwtSessionAuthority) Revoke(ctx context.Context, tokenString string) error {
	_, tokenID, err := s.parse(tokenString)
	if err != nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, tokenID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to revoke session")
	}

	return nil
}

// TTL returns the session lifetime.
func (s *jwtSessionAuthority) TTL() time.Duration {
	return s.ttl
}

// parse verifies the signature and extracts the subject and token ID claims.
func (s *jwtSessionAuthority) parse(tokenString string) (accountID, tokenID uuid.UUID, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, service.ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, uuid.Nil, service.ErrNoSession
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, service.ErrNoSession
	}
	accountID, err = uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, uuid.Nil, service.ErrNoSession
	}

	jti, ok := claims["jti"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, service.ErrNoSession
	}
	tokenID, err = uuid.Parse(jti)
	if err != nil {
		return uuid.Nil, uuid.Nil, service.ErrNoSession
	}

	return accountID, tokenID, nil
}
