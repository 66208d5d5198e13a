package models

import (
	"time"
)

// Server side record of an issued refresh token.
// The raw token stays with the client; the ledger is keyed by TokenHash.
type RefreshToken struct {
	TokenHash string
	UserID    string
	Audience  string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time // nil if token not revoked
}

func (t RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
