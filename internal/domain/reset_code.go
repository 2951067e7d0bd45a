package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetCode is the single live reset code for a user. A new
// forgot-password request overwrites the previous row rather than adding one.
type PasswordResetCode struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (c *PasswordResetCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
