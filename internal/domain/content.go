package domain

import "time"

// ContentType clasifica el tipo de contenido publicado.
type ContentType string

const (
	ContentVideo   ContentType = "video"
	ContentPodcast ContentType = "podcast"
	ContentImage   ContentType = "image"
	ContentText    ContentType = "text"
	ContentFile    ContentType = "file"
)

// ContentStatus indica si el contenido es visible públicamente.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
)

// Category agrupa contenidos bajo un nombre único.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Content es un ítem publicable con categorías y archivo asociado.
type Content struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	ShortDescription string        `json:"short_description"`
	LongDescription  string        `json:"long_description,omitempty"`
	Tags             []string      `json:"tags"`
	CategoryIDs      []string      `json:"category_ids"`
	Type             ContentType   `json:"type"`
	Visibility       bool          `json:"visibility"`
	CoverImageURL    string        `json:"cover_image_url,omitempty"`
	FileURL          string        `json:"file_url,omitempty"`
	Status           ContentStatus `json:"status"`
	PublishedAt      *time.Time    `json:"published_at,omitempty"`
	AuthorID         string        `json:"author_id"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Download registra una descarga de contenido por un usuario.
type Download struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ContentID    string    `json:"content_id"`
	DownloadedAt time.Time `json:"downloaded_at"`
}
