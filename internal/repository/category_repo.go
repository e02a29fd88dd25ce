package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mediahub/internal/domain"
)

// CategoryRepository define la persistencia de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) error
	GetByID(ctx context.Context, id string) (domain.Category, error)
	GetByName(ctx context.Context, name string) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) error
	Delete(ctx context.Context, id string) error
}

// PgCategoryRepository implementa CategoryRepository usando pgxpool.
type PgCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgCategoryRepository(pool *pgxpool.Pool) *PgCategoryRepository {
	return &PgCategoryRepository{pool: pool}
}

func (r *PgCategoryRepository) Create(ctx context.Context, category domain.Category) error {
	const query = `
		INSERT INTO categories (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Description, category.CreatedAt)
	return err
}

func (r *PgCategoryRepository) GetByID(ctx context.Context, id string) (domain.Category, error) {
	const query = `SELECT id, name, description, created_at FROM categories WHERE id = $1`
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}

func (r *PgCategoryRepository) GetByName(ctx context.Context, name string) (domain.Category, error) {
	const query = `SELECT id, name, description, created_at FROM categories WHERE name = $1`
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}

func (r *PgCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PgCategoryRepository) Update(ctx context.Context, category domain.Category) error {
	const query = `UPDATE categories SET name = $2, description = $3 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Description)
	return err
}

func (r *PgCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
