package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one live login. A row exists from establishment until
// logout or expiry; resolving a token whose row is gone yields no identity,
// which is how logout invalidates a token that is otherwise still signed.
type Session struct {
	TokenID   uuid.UUID // The unique ID embedded in the token, not the token itself.
	AccountID uuid.UUID // Links this session to the Account it authenticates.
	ExpiresAt time.Time // The exact time when this session becomes invalid.
	CreatedAt time.Time // Timestamp of when the session was established.
}
