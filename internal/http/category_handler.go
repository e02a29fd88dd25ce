package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediahub/internal/service"
)

// CategoryHandler expone el catálogo de categorías.
type CategoryHandler struct {
	logger       *zap.Logger
	categoryServ *service.CategoryService
}

func NewCategoryHandler(logger *zap.Logger, categoryServ *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{logger: logger, categoryServ: categoryServ}
}

// List maneja GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list categories")
		return
	}
	respondSuccess(c, http.StatusOK, "Success get all categories", gin.H{"categories": categories})
}

// Get maneja GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondFailed(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		h.logger.Error("get category failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		return
	}
	respondSuccess(c, http.StatusOK, "Success get category by id", gin.H{"category": category})
}

// Create maneja POST /admin/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required")
		return
	}

	category, err := h.categoryServ.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCategory) {
			respondFailed(c, http.StatusBadRequest, "DUPLICATE_DATA", "Category name already exists")
			return
		}
		h.logger.Error("create category failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "CREATE_FAILED", "Could not create category")
		return
	}

	respondSuccess(c, http.StatusCreated, "Success create new category", gin.H{"category": category})
}

// Update maneja PUT /admin/categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	category, err := h.categoryServ.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondFailed(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		case errors.Is(err, service.ErrDuplicateCategory):
			respondFailed(c, http.StatusBadRequest, "DUPLICATE_DATA", "Category name already exists")
		default:
			h.logger.Error("update category failed", zap.Error(err))
			respondFailed(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update category")
		}
		return
	}

	respondSuccess(c, http.StatusOK, "Success update category by id", gin.H{"category": category})
}

// Delete maneja DELETE /admin/categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondFailed(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		h.logger.Error("delete category failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "DELETE_FAILED", "Could not delete category")
		return
	}
	respondSuccess(c, http.StatusOK, "Success delete category by id", nil)
}
