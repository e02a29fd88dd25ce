package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mediahub/internal/domain"
	"mediahub/internal/repository"
)

// CategoryService maneja el CRUD de categorías.
type CategoryService struct {
	logger     *zap.Logger
	categories repository.CategoryRepository
}

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
)

func NewCategoryService(logger *zap.Logger, categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{logger: logger, categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (domain.Category, error) {
	name = strings.TrimSpace(name)

	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return domain.Category{}, ErrDuplicateCategory
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, err
	}

	category := domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id, name, description string) (domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if name = strings.TrimSpace(name); name != "" && name != category.Name {
		if existing, err := s.categories.GetByName(ctx, name); err == nil && existing.ID != id {
			return domain.Category{}, ErrDuplicateCategory
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, err
		}
		category.Name = name
	}
	if description = strings.TrimSpace(description); description != "" {
		category.Description = description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
