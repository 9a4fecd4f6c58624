package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoSession is returned by Resolve when the token does not prove any
// identity (missing, malformed, expired, tampered or revoked). It is a
// normal negative result, never a server fault.
var ErrNoSession = errors.New("no valid session")

// SessionAuthority converts a verified identity into a durable session token
// and reconstitutes the identity from that token on later requests. The
// token payload carries only the account ID, never credentials. Each token
// is backed by a stored session record, so revocation on logout makes the
// token resolve to no identity even before it expires.
type SessionAuthority interface {
	// Establish mints a session token for the given account ID and records
	// the backing session.
	Establish(ctx context.Context, accountID uuid.UUID) (string, error)

	// Resolve extracts the account ID from a session token, checking that
	// the backing session is still live. Invalid or revoked tokens yield
	// ErrNoSession.
	Resolve(ctx context.Context, token string) (uuid.UUID, error)

	// Revoke ends the session behind the token. After Revoke, resolving the
	// same token yields ErrNoSession. Revoking a token with no live session
	// is a no-op.
	Revoke(ctx context.Context, token string) error

	// TTL returns the lifetime of freshly established sessions, used to
	// bound the cookie carrying the token.
	TTL() time.Duration
}
