package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediahub/internal/domain"
	"mediahub/internal/service"
)

// ContentHandler expone el catálogo público y la gestión de contenidos.
type ContentHandler struct {
	logger      *zap.Logger
	contentServ *service.ContentService
}

func NewContentHandler(logger *zap.Logger, contentServ *service.ContentService) *ContentHandler {
	return &ContentHandler{logger: logger, contentServ: contentServ}
}

type contentRequest struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Tags             []string `json:"tags"`
	CategoryIDs      []string `json:"categoryIds"`
	Type             string   `json:"type" binding:"omitempty,oneof=video podcast image text file"`
	Visibility       *bool    `json:"visibility"`
	CoverImageURL    string   `json:"coverImageUrl"`
	FileURL          string   `json:"fileUrl"`
	Status           string   `json:"status" binding:"omitempty,oneof=draft published"`
}

func (r contentRequest) toInput() service.ContentInput {
	return service.ContentInput{
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		LongDescription:  r.LongDescription,
		Tags:             r.Tags,
		CategoryIDs:      r.CategoryIDs,
		Type:             domain.ContentType(r.Type),
		Visibility:       r.Visibility,
		CoverImageURL:    r.CoverImageURL,
		FileURL:          r.FileURL,
		Status:           domain.ContentStatus(r.Status),
	}
}

// ListPublished maneja GET /contents.
func (h *ContentHandler) ListPublished(c *gin.Context) {
	contents, err := h.contentServ.ListPublished(c.Request.Context())
	if err != nil {
		h.logger.Error("list contents failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list contents")
		return
	}
	respondSuccess(c, http.StatusOK, "Success get all contents", gin.H{"contents": contents})
}

// Get maneja GET /contents/:id (solo publicados y visibles).
func (h *ContentHandler) Get(c *gin.Context) {
	content, err := h.contentServ.Get(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondFailed(c, http.StatusNotFound, "CONTENT_NOT_FOUND", "Content not found")
			return
		}
		h.logger.Error("get content failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		return
	}
	respondSuccess(c, http.StatusOK, "Success get content by id", gin.H{"content": content})
}

// ListAll maneja GET /admin/contents (incluye borradores).
func (h *ContentHandler) ListAll(c *gin.Context) {
	contents, err := h.contentServ.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list all contents failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list contents")
		return
	}
	respondSuccess(c, http.StatusOK, "Success get all contents", gin.H{"contents": contents})
}

// Create maneja POST /admin/contents.
func (h *ContentHandler) Create(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.ShortDescription == "" || req.Type == "" {
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title, short description and type are required")
		return
	}

	content, err := h.contentServ.Create(c.Request.Context(), claims.UserID, req.toInput())
	if err != nil {
		h.logger.Error("create content failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "CREATE_FAILED", "Could not create content")
		return
	}

	respondSuccess(c, http.StatusCreated, "Success create new content", gin.H{"content": content})
}

// Update maneja PUT /admin/contents/:id.
func (h *ContentHandler) Update(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	content, err := h.contentServ.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondFailed(c, http.StatusNotFound, "CONTENT_NOT_FOUND", "Content not found")
			return
		}
		h.logger.Error("update content failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update content")
		return
	}

	respondSuccess(c, http.StatusOK, "Success update content by id", gin.H{"content": content})
}

// Delete maneja DELETE /admin/contents/:id.
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.contentServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondFailed(c, http.StatusNotFound, "CONTENT_NOT_FOUND", "Content not found")
			return
		}
		h.logger.Error("delete content failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "DELETE_FAILED", "Could not delete content")
		return
	}
	respondSuccess(c, http.StatusOK, "Success delete content by id", nil)
}

// Download maneja POST /contents/:id/download.
func (h *ContentHandler) Download(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	download, err := h.contentServ.RecordDownload(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondFailed(c, http.StatusNotFound, "CONTENT_NOT_FOUND", "Content not found")
			return
		}
		h.logger.Error("record download failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Could not record download")
		return
	}

	respondSuccess(c, http.StatusOK, "Download recorded", gin.H{"download": download})
}
