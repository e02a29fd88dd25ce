package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mediahub/internal/domain"
)

// OTPRepository persiste códigos de un solo uso.
type OTPRepository interface {
	Create(ctx context.Context, otp domain.OTP) error
	// LatestActive devuelve el registro más reciente no usado y no
	// vencido del usuario; pgx.ErrNoRows si no hay ninguno.
	LatestActive(ctx context.Context, userID string) (domain.OTP, error)
	IncrementAttempts(ctx context.Context, id string) error
	MarkUsed(ctx context.Context, id string) error
}

// PgOTPRepository implementa OTPRepository usando pgxpool.
type PgOTPRepository struct {
	pool *pgxpool.Pool
}

func NewPgOTPRepository(pool *pgxpool.Pool) *PgOTPRepository {
	return &PgOTPRepository{pool: pool}
}

func (r *PgOTPRepository) Create(ctx context.Context, otp domain.OTP) error {
	const query = `
		INSERT INTO otps (id, user_id, code, expires_at, is_used, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.Code,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.Attempts,
		otp.CreatedAt,
	)
	return err
}

func (r *PgOTPRepository) LatestActive(ctx context.Context, userID string) (domain.OTP, error) {
	const query = `
		SELECT id, user_id, code, expires_at, is_used, attempts, created_at
		FROM otps
		WHERE user_id = $1 AND is_used = false AND expires_at > now()
		ORDER BY created_at DESC
		LIMIT 1
	`
	var o domain.OTP
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&o.ID,
		&o.UserID,
		&o.Code,
		&o.ExpiresAt,
		&o.IsUsed,
		&o.Attempts,
		&o.CreatedAt,
	)
	return o, err
}

func (r *PgOTPRepository) IncrementAttempts(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE otps SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

func (r *PgOTPRepository) MarkUsed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE otps SET is_used = true WHERE id = $1`, id)
	return err
}
