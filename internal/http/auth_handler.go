package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediahub/internal/service"
)

// AuthHandler expone los flujos públicos de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{logger: logger, authServ: authServ}
}

// GuestLogin maneja POST /auth/guest-login.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	var req struct {
		DeviceID string `json:"deviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid guest login request", zap.Error(err))
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Device ID is required")
		return
	}

	pair, err := h.authServ.GuestLogin(c.Request.Context(), req.DeviceID)
	if err != nil {
		h.logger.Error("guest login failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		return
	}

	respondSuccess(c, http.StatusOK, "Guest login successful", pair)
}

// SendOTP maneja POST /auth/send-otp.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required,min=10,max=16"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send otp request", zap.Error(err))
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid phone number")
		return
	}

	if err := h.authServ.SendOTP(c.Request.Context(), req.Phone); err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			respondFailed(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			return
		}
		h.logger.Error("send otp failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		return
	}

	respondSuccess(c, http.StatusOK, "OTP sent successfully", nil)
}

// VerifyOTP maneja POST /auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required,len=4,numeric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid verify otp request", zap.Error(err))
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone and 4-digit OTP are required")
		return
	}

	pair, err := h.authServ.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondFailed(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrNoActiveOTP):
			respondFailed(c, http.StatusBadRequest, "OTP_EXPIRED", "OTP expired or not found")
		case errors.Is(err, service.ErrMaxAttempts):
			respondFailed(c, http.StatusBadRequest, "MAX_ATTEMPTS_EXCEEDED", "Maximum attempts exceeded")
		case errors.Is(err, service.ErrOTPInvalid):
			respondFailed(c, http.StatusBadRequest, "INVALID_OTP", "Invalid OTP")
		default:
			h.logger.Error("verify otp failed", zap.Error(err))
			respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		}
		return
	}

	respondSuccess(c, http.StatusOK, "OTP verified successfully", pair)
}

// RefreshToken maneja POST /auth/refresh-token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid refresh request", zap.Error(err))
		respondFailed(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required")
		return
	}

	pair, err := h.authServ.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			respondFailed(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token")
		case errors.Is(err, service.ErrUserNotFound):
			respondFailed(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		default:
			h.logger.Error("refresh token failed", zap.Error(err))
			respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		}
		return
	}

	respondSuccess(c, http.StatusOK, "Tokens refreshed successfully", pair)
}

// Profile maneja GET /auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
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
		h.logger.Error("get profile failed", zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
		return
	}

	respondSuccess(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"phone":   user.Phone,
		"email":   user.Email,
		"role":    user.Role,
		"isGuest": user.IsGuest,
		"avatar":  user.Avatar,
		"bio":     user.Bio,
	})
}
