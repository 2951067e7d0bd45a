package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/minhquan-ng/auth-capstone-api/internal/domain"
)

type ResetCodeRepository struct {
	db *sqlx.DB
}

func NewResetCodeRepo(db *sqlx.DB) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

func (r *ResetCodeRepository) Upsert(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) (*domain.PasswordResetCode, error) {
	const query = `
        INSERT INTO password_reset_code (user_id, code, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE
        SET code = EXCLUDED.code,
            expires_at = EXCLUDED.expires_at,
            created_at = NOW()
        RETURNING user_id, code, expires_at, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, userID, code, expiresAt)
	var reset domain.PasswordResetCode
	if err := row.StructScan(&reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *ResetCodeRepository) FindByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*domain.PasswordResetCode, error) {
	const query = `
        SELECT user_id, code, expires_at, created_at
        FROM password_reset_code
        WHERE user_id = $1 AND code = $2
    `
	var reset domain.PasswordResetCode
	if err := r.db.GetContext(ctx, &reset, query, userID, code); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *ResetCodeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM password_reset_code WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
