package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minhquan-ng/auth-capstone-api/internal/domain"
)

type ResetCodeRepository interface {
	// Upsert creates the reset code row for a user, or replaces the existing
	// one so at most one code is live per user.
	Upsert(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) (*domain.PasswordResetCode, error)
	FindByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*domain.PasswordResetCode, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
