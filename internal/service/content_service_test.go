package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mediahub/internal/domain"
)

type mockCategoryRepo struct {
	byID map[string]domain.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{byID: make(map[string]domain.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, category domain.Category) error {
	m.byID[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (domain.Category, error) {
	category, ok := m.byID[id]
	if !ok {
		return domain.Category{}, pgx.ErrNoRows
	}
	return category, nil
}

func (m *mockCategoryRepo) GetByName(_ context.Context, name string) (domain.Category, error) {
	for _, category := range m.byID {
		if category.Name == name {
			return category, nil
		}
	}
	return domain.Category{}, pgx.ErrNoRows
}

func (m *mockCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.byID {
		categories = append(categories, category)
	}
	return categories, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category domain.Category) error {
	if _, ok := m.byID[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type mockContentRepo struct {
	byID map[string]domain.Content
}

func newMockContentRepo() *mockContentRepo {
	return &mockContentRepo{byID: make(map[string]domain.Content)}
}

func (m *mockContentRepo) Create(_ context.Context, content domain.Content) error {
	m.byID[content.ID] = content
	return nil
}

func (m *mockContentRepo) GetByID(_ context.Context, id string) (domain.Content, error) {
	content, ok := m.byID[id]
	if !ok {
		return domain.Content{}, pgx.ErrNoRows
	}
	return content, nil
}

func (m *mockContentRepo) ListPublished(_ context.Context) ([]domain.Content, error) {
	var contents []domain.Content
	for _, content := range m.byID {
		if content.Status == domain.StatusPublished && content.Visibility {
			contents = append(contents, content)
		}
	}
	return contents, nil
}

func (m *mockContentRepo) ListAll(_ context.Context) ([]domain.Content, error) {
	var contents []domain.Content
	for _, content := range m.byID {
		contents = append(contents, content)
	}
	return contents, nil
}

func (m *mockContentRepo) Update(_ context.Context, content domain.Content) error {
	if _, ok := m.byID[content.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[content.ID] = content
	return nil
}

func (m *mockContentRepo) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type mockDownloadRepo struct {
	records []domain.Download
}

func (m *mockDownloadRepo) Create(_ context.Context, download domain.Download) error {
	m.records = append(m.records, download)
	return nil
}

func (m *mockDownloadRepo) ListByUser(_ context.Context, userID string) ([]domain.Download, error) {
	var downloads []domain.Download
	for _, d := range m.records {
		if d.UserID == userID {
			downloads = append(downloads, d)
		}
	}
	return downloads, nil
}

func TestCategoryServiceCreate_DuplicateName(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := NewCategoryService(zap.NewNop(), repo)

	if _, err := svc.Create(context.Background(), "Podcasts", ""); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Create(context.Background(), "Podcasts", "other"); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestCategoryServiceUpdate_RenameToTakenName(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := NewCategoryService(zap.NewNop(), repo)

	first, _ := svc.Create(context.Background(), "Podcasts", "")
	second, _ := svc.Create(context.Background(), "Videos", "")

	if _, err := svc.Update(context.Background(), second.ID, "Podcasts", ""); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}

	// Renombrarse a su propio nombre no choca.
	if _, err := svc.Update(context.Background(), first.ID, "Podcasts", "updated"); err != nil {
		t.Fatalf("self rename: %v", err)
	}
}

func TestCategoryServiceDelete_NotFound(t *testing.T) {
	svc := NewCategoryService(zap.NewNop(), newMockCategoryRepo())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestContentServiceCreate_DefaultsToDraft(t *testing.T) {
	contents := newMockContentRepo()
	svc := NewContentService(zap.NewNop(), contents, &mockDownloadRepo{})

	content, err := svc.Create(context.Background(), "author-1", ContentInput{
		Title: "Episode 1",
		Type:  domain.ContentPodcast,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if content.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %s", content.Status)
	}
	if content.PublishedAt != nil {
		t.Fatalf("draft must not carry a publish timestamp")
	}
	if !content.Visibility {
		t.Fatalf("expected visibility default true")
	}
	if content.Tags == nil || content.CategoryIDs == nil {
		t.Fatalf("expected empty slices, got nil")
	}
}

func TestContentServiceCreate_PublishedGetsTimestamp(t *testing.T) {
	svc := NewContentService(zap.NewNop(), newMockContentRepo(), &mockDownloadRepo{})

	content, err := svc.Create(context.Background(), "author-1", ContentInput{
		Title:  "Episode 1",
		Type:   domain.ContentPodcast,
		Status: domain.StatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if content.PublishedAt == nil {
		t.Fatalf("expected publish timestamp")
	}
}

func TestContentServiceGet_PublicOnlyHidesDrafts(t *testing.T) {
	contents := newMockContentRepo()
	svc := NewContentService(zap.NewNop(), contents, &mockDownloadRepo{})

	draft, _ := svc.Create(context.Background(), "author-1", ContentInput{Title: "Draft", Type: domain.ContentText})

	if _, err := svc.Get(context.Background(), draft.ID, true); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected draft hidden from public, got %v", err)
	}
	if _, err := svc.Get(context.Background(), draft.ID, false); err != nil {
		t.Fatalf("expected draft visible to admin, got %v", err)
	}
}

func TestContentServiceGet_PublicOnlyHidesInvisible(t *testing.T) {
	contents := newMockContentRepo()
	svc := NewContentService(zap.NewNop(), contents, &mockDownloadRepo{})

	hidden := false
	content, _ := svc.Create(context.Background(), "author-1", ContentInput{
		Title:      "Hidden",
		Type:       domain.ContentVideo,
		Status:     domain.StatusPublished,
		Visibility: &hidden,
	})

	if _, err := svc.Get(context.Background(), content.ID, true); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected invisible content hidden, got %v", err)
	}
}

func TestContentServiceUpdate_PublishSetsTimestampOnce(t *testing.T) {
	contents := newMockContentRepo()
	svc := NewContentService(zap.NewNop(), contents, &mockDownloadRepo{})

	content, _ := svc.Create(context.Background(), "author-1", ContentInput{Title: "Ep", Type: domain.ContentPodcast})

	published, err := svc.Update(context.Background(), content.ID, ContentInput{Status: domain.StatusPublished})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("expected publish timestamp after transition")
	}

	firstPublish := *published.PublishedAt
	time.Sleep(10 * time.Millisecond)
	again, err := svc.Update(context.Background(), content.ID, ContentInput{Status: domain.StatusPublished})
	if err != nil {
		t.Fatalf("re-publish: %v", err)
	}
	if !again.PublishedAt.Equal(firstPublish) {
		t.Fatalf("publish timestamp must not move on re-publish")
	}
}

func TestContentServiceRecordDownload_PublishedOnly(t *testing.T) {
	contents := newMockContentRepo()
	downloads := &mockDownloadRepo{}
	svc := NewContentService(zap.NewNop(), contents, downloads)

	draft, _ := svc.Create(context.Background(), "author-1", ContentInput{Title: "Draft", Type: domain.ContentFile})

	if _, err := svc.RecordDownload(context.Background(), "u1", draft.ID); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected draft download rejected, got %v", err)
	}
	if len(downloads.records) != 0 {
		t.Fatalf("expected no download recorded")
	}

	published, _ := svc.Update(context.Background(), draft.ID, ContentInput{Status: domain.StatusPublished})
	download, err := svc.RecordDownload(context.Background(), "u1", published.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if download.UserID != "u1" || download.ContentID != published.ID {
		t.Fatalf("unexpected download record: %+v", download)
	}
	if len(downloads.records) != 1 {
		t.Fatalf("expected one download recorded, got %d", len(downloads.records))
	}
}
