package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mediahub/internal/domain"
)

// ContentRepository define la persistencia de contenidos.
type ContentRepository interface {
	Create(ctx context.Context, content domain.Content) error
	GetByID(ctx context.Context, id string) (domain.Content, error)
	ListPublished(ctx context.Context) ([]domain.Content, error)
	ListAll(ctx context.Context) ([]domain.Content, error)
	Update(ctx context.Context, content domain.Content) error
	Delete(ctx context.Context, id string) error
}

// PgContentRepository implementa ContentRepository usando pgxpool.
type PgContentRepository struct {
	pool *pgxpool.Pool
}

func NewPgContentRepository(pool *pgxpool.Pool) *PgContentRepository {
	return &PgContentRepository{pool: pool}
}

const contentColumns = `id, title, short_description, long_description, tags, category_ids, type, visibility, cover_image_url, file_url, status, published_at, author_id, created_at`

func (r *PgContentRepository) Create(ctx context.Context, content domain.Content) error {
	const query = `
		INSERT INTO contents (id, title, short_description, long_description, tags, category_ids, type, visibility, cover_image_url, file_url, status, published_at, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		content.ID,
		content.Title,
		content.ShortDescription,
		content.LongDescription,
		content.Tags,
		content.CategoryIDs,
		string(content.Type),
		content.Visibility,
		content.CoverImageURL,
		content.FileURL,
		string(content.Status),
		content.PublishedAt,
		content.AuthorID,
		content.CreatedAt,
	)
	return err
}

func (r *PgContentRepository) GetByID(ctx context.Context, id string) (domain.Content, error) {
	return r.getOne(ctx, `SELECT `+contentColumns+` FROM contents WHERE id = $1`, id)
}

// ListPublished devuelve solo contenidos publicados y visibles.
func (r *PgContentRepository) ListPublished(ctx context.Context) ([]domain.Content, error) {
	return r.list(ctx, `SELECT `+contentColumns+` FROM contents WHERE status = 'published' AND visibility = true ORDER BY published_at DESC`)
}

func (r *PgContentRepository) ListAll(ctx context.Context) ([]domain.Content, error) {
	return r.list(ctx, `SELECT `+contentColumns+` FROM contents ORDER BY created_at DESC`)
}

func (r *PgContentRepository) Update(ctx context.Context, content domain.Content) error {
	const query = `
		UPDATE contents
		SET title = $2, short_description = $3, long_description = $4, tags = $5, category_ids = $6,
		    type = $7, visibility = $8, cover_image_url = $9, file_url = $10, status = $11, published_at = $12
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		content.ID,
		content.Title,
		content.ShortDescription,
		content.LongDescription,
		content.Tags,
		content.CategoryIDs,
		string(content.Type),
		content.Visibility,
		content.CoverImageURL,
		content.FileURL,
		string(content.Status),
		content.PublishedAt,
	)
	return err
}

func (r *PgContentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	return err
}

func scanContent(row rowScanner) (domain.Content, error) {
	var (
		c           domain.Content
		typ, status string
	)
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.ShortDescription,
		&c.LongDescription,
		&c.Tags,
		&c.CategoryIDs,
		&typ,
		&c.Visibility,
		&c.CoverImageURL,
		&c.FileURL,
		&status,
		&c.PublishedAt,
		&c.AuthorID,
		&c.CreatedAt,
	)
	if err != nil {
		return domain.Content{}, err
	}
	c.Type = domain.ContentType(typ)
	c.Status = domain.ContentStatus(status)
	return c, nil
}

func (r *PgContentRepository) getOne(ctx context.Context, query string, args ...any) (domain.Content, error) {
	return scanContent(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgContentRepository) list(ctx context.Context, query string) ([]domain.Content, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []domain.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}
