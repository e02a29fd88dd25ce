package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediahub/internal/domain"
	"mediahub/internal/service"
	"mediahub/internal/sso"
)

// AdminHandler expone el login SSO y la gestión de cuentas del panel.
type AdminHandler struct {
	logger    *zap.Logger
	authServ  *service.AuthService
	adminServ *service.AdminService
}

func NewAdminHandler(logger *zap.Logger, authServ *service.AuthService, adminServ *service.AdminService) *AdminHandler {
	return &AdminHandler{logger: logger, authServ: authServ, adminServ: adminServ}
}

// Login maneja POST /admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		SSOToken string `json:"ssoToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid admin login request", zap.Error(err))
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "SSO token is required")
		return
	}

	pair, err := h.authServ.AdminLogin(c.Request.Context(), req.SSOToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondFailed(c, http.StatusBadRequest, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, sso.ErrAssertionInvalid):
			respondFailed(c, http.StatusBadRequest, "INVALID_SSO_TOKEN", "SSO token validation failed")
		default:
			h.logger.Error("admin login failed", zap.Error(err))
			respondFailed(c, http.StatusInternalServerError, "LOGIN_FAILED", "Login failed")
		}
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", pair)
}

// RefreshToken maneja POST /admin/refresh-token.
func (h *AdminHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required")
		return
	}

	pair, err := h.authServ.AdminRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) || errors.Is(err, service.ErrNotAdmin) {
			respondFailed(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token")
			return
		}
		h.logger.Error("admin refresh failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		return
	}

	respondSuccess(c, http.StatusOK, "Tokens refreshed successfully", pair)
}

// Profile maneja GET /admin/profile.
func (h *AdminHandler) Profile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	user, err := h.authServ.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondFailed(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		h.logger.Error("admin profile failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "PROFILE_FETCH_FAILED", "Failed to fetch profile")
		return
	}

	respondSuccess(c, http.StatusOK, "Profile fetched successfully", gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

// ListUsers maneja GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminServ.ListAdmins(c.Request.Context())
	if err != nil {
		h.logger.Error("list admin users failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list users")
		return
	}

	respondSuccess(c, http.StatusOK, "Success get all admin users", gin.H{"users": users})
}

// CreateUser maneja POST /admin/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Role     string `json:"role" binding:"omitempty,oneof=admin super_admin"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create user request", zap.Error(err))
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.adminServ.CreateUser(c.Request.Context(), service.AdminUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			respondFailed(c, http.StatusBadRequest, "DUPLICATE_EMAIL", "Email already exists")
		case errors.Is(err, service.ErrInvalidRole):
			respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid role")
		default:
			h.logger.Error("create admin user failed", zap.Error(err))
			respondFailed(c, http.StatusInternalServerError, "CREATE_FAILED", "Could not create user")
		}
		return
	}

	respondSuccess(c, http.StatusCreated, "Success create new user", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// UpdateUser maneja PUT /admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email" binding:"omitempty,email"`
		Role   string `json:"role" binding:"omitempty,oneof=guest user admin super_admin"`
		Avatar string `json:"avatar"`
		Bio    string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.adminServ.UpdateUser(c.Request.Context(), domain.Role(claims.Role), c.Param("id"), service.AdminUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Role:   domain.Role(req.Role),
		Avatar: req.Avatar,
		Bio:    req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondFailed(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrForbidden):
			respondFailed(c, http.StatusForbidden, "FORBIDDEN", "Cannot modify super admin user")
		case errors.Is(err, service.ErrDuplicateEmail):
			respondFailed(c, http.StatusBadRequest, "DUPLICATE_EMAIL", "Email already exists")
		case errors.Is(err, service.ErrInvalidRole):
			respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid role")
		default:
			h.logger.Error("update admin user failed", zap.Error(err))
			respondFailed(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update user")
		}
		return
	}

	respondSuccess(c, http.StatusOK, "Success update user by id", gin.H{"user": user})
}

// DeleteUser maneja DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	err := h.adminServ.DeleteUser(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondFailed(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrForbidden):
			respondFailed(c, http.StatusForbidden, "FORBIDDEN", "Cannot delete this user")
		default:
			h.logger.Error("delete admin user failed", zap.Error(err))
			respondFailed(c, http.StatusInternalServerError, "DELETE_FAILED", "Could not delete user")
		}
		return
	}

	respondSuccess(c, http.StatusOK, "Success delete user by id", nil)
}
