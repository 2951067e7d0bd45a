package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/minhquan-ng/auth-capstone-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
