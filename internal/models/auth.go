package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one ledger record per issued refresh token. Presence
// of the record is the sole source of truth for "not yet revoked";
// records are inserted and deleted, never mutated.
type RefreshToken struct {
	Token     string    `db:"token"      json:"token"`
	UserID    uuid.UUID `db:"user_id"    json:"userId"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
