package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mediahub/internal/domain"
)

// DownloadRepository registra descargas de contenido.
type DownloadRepository interface {
	Create(ctx context.Context, download domain.Download) error
	ListByUser(ctx context.Context, userID string) ([]domain.Download, error)
}

// PgDownloadRepository implementa DownloadRepository usando pgxpool.
type PgDownloadRepository struct {
	pool *pgxpool.Pool
}

func NewPgDownloadRepository(pool *pgxpool.Pool) *PgDownloadRepository {
	return &PgDownloadRepository{pool: pool}
}

func (r *PgDownloadRepository) Create(ctx context.Context, download domain.Download) error {
	const query = `
		INSERT INTO downloads (id, user_id, content_id, downloaded_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, download.ID, download.UserID, download.ContentID, download.DownloadedAt)
	return err
}

func (r *PgDownloadRepository) ListByUser(ctx context.Context, userID string) ([]domain.Download, error) {
	const query = `
		SELECT id, user_id, content_id, downloaded_at
		FROM downloads
		WHERE user_id = $1
		ORDER BY downloaded_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var downloads []domain.Download
	for rows.Next() {
		var d domain.Download
		if err := rows.Scan(&d.ID, &d.UserID, &d.ContentID, &d.DownloadedAt); err != nil {
			return nil, err
		}
		downloads = append(downloads, d)
	}
	return downloads, rows.Err()
}
