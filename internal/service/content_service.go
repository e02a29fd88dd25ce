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

// ContentService maneja el ciclo de vida de contenidos y descargas.
type ContentService struct {
	logger    *zap.Logger
	contents  repository.ContentRepository
	downloads repository.DownloadRepository
}

var ErrContentNotFound = errors.New("content not found")

func NewContentService(logger *zap.Logger, contents repository.ContentRepository, downloads repository.DownloadRepository) *ContentService {
	return &ContentService{logger: logger, contents: contents, downloads: downloads}
}

type ContentInput struct {
	Title            string
	ShortDescription string
	LongDescription  string
	Tags             []string
	CategoryIDs      []string
	Type             domain.ContentType
	Visibility       *bool
	CoverImageURL    string
	FileURL          string
	Status           domain.ContentStatus
}

func (s *ContentService) Create(ctx context.Context, authorID string, input ContentInput) (domain.Content, error) {
	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}
	visibility := true
	if input.Visibility != nil {
		visibility = *input.Visibility
	}

	content := domain.Content{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(input.Title),
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		LongDescription:  strings.TrimSpace(input.LongDescription),
		Tags:             input.Tags,
		CategoryIDs:      input.CategoryIDs,
		Type:             input.Type,
		Visibility:       visibility,
		CoverImageURL:    input.CoverImageURL,
		FileURL:          input.FileURL,
		Status:           status,
		AuthorID:         authorID,
		CreatedAt:        now,
	}
	if content.Tags == nil {
		content.Tags = []string{}
	}
	if content.CategoryIDs == nil {
		content.CategoryIDs = []string{}
	}
	if status == domain.StatusPublished {
		content.PublishedAt = &now
	}

	if err := s.contents.Create(ctx, content); err != nil {
		return domain.Content{}, err
	}
	return content, nil
}

// Get devuelve el contenido por id. Con publicOnly, los borradores y los
// contenidos ocultos se reportan como inexistentes.
func (s *ContentService) Get(ctx context.Context, id string, publicOnly bool) (domain.Content, error) {
	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Content{}, ErrContentNotFound
		}
		return domain.Content{}, err
	}
	if publicOnly && (content.Status != domain.StatusPublished || !content.Visibility) {
		return domain.Content{}, ErrContentNotFound
	}
	return content, nil
}

func (s *ContentService) ListPublished(ctx context.Context) ([]domain.Content, error) {
	return s.contents.ListPublished(ctx)
}

func (s *ContentService) ListAll(ctx context.Context) ([]domain.Content, error) {
	return s.contents.ListAll(ctx)
}

func (s *ContentService) Update(ctx context.Context, id string, input ContentInput) (domain.Content, error) {
	content, err := s.Get(ctx, id, false)
	if err != nil {
		return domain.Content{}, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		content.Title = title
	}
	if short := strings.TrimSpace(input.ShortDescription); short != "" {
		content.ShortDescription = short
	}
	if long := strings.TrimSpace(input.LongDescription); long != "" {
		content.LongDescription = long
	}
	if input.Tags != nil {
		content.Tags = input.Tags
	}
	if input.CategoryIDs != nil {
		content.CategoryIDs = input.CategoryIDs
	}
	if input.Type != "" {
		content.Type = input.Type
	}
	if input.Visibility != nil {
		content.Visibility = *input.Visibility
	}
	if input.CoverImageURL != "" {
		content.CoverImageURL = input.CoverImageURL
	}
	if input.FileURL != "" {
		content.FileURL = input.FileURL
	}
	if input.Status != "" {
		if input.Status == domain.StatusPublished && content.Status != domain.StatusPublished {
			now := time.Now().UTC()
			content.PublishedAt = &now
		}
		content.Status = input.Status
	}

	if err := s.contents.Update(ctx, content); err != nil {
		return domain.Content{}, err
	}
	return content, nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id, false); err != nil {
		return err
	}
	return s.contents.Delete(ctx, id)
}

// RecordDownload registra la descarga de un contenido publicado.
func (s *ContentService) RecordDownload(ctx context.Context, userID, contentID string) (domain.Download, error) {
	if _, err := s.Get(ctx, contentID, true); err != nil {
		return domain.Download{}, err
	}

	download := domain.Download{
		ID:           uuid.NewString(),
		UserID:       userID,
		ContentID:    contentID,
		DownloadedAt: time.Now().UTC(),
	}
	if err := s.downloads.Create(ctx, download); err != nil {
		return domain.Download{}, err
	}
	return download, nil
}
