package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mediahub/internal/domain"
	"mediahub/internal/service"
)

func newGuardedRouter(tokenServ *service.TokenService, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(tokenServ)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := GetAuthClaims(c)
		respondSuccess(c, http.StatusOK, "ok", gin.H{"id": claims.UserID})
	})
	r.GET("/guarded", handlers...)
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokenServ := service.NewTokenService("access", "refresh", time.Hour, time.Hour)
	r := newGuardedRouter(tokenServ)

	rec := performRequest(r, http.MethodGet, "/guarded", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	tokenServ := service.NewTokenService("access", "refresh", time.Hour, time.Hour)
	r := newGuardedRouter(tokenServ)

	rec := performRequest(r, http.MethodGet, "/guarded", nil,
		map[string]string{"Authorization": "Token abcdef"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	tokenServ := service.NewTokenService("access", "refresh", time.Hour, time.Hour)
	r := newGuardedRouter(tokenServ)

	rec := performRequest(r, http.MethodGet, "/guarded", nil, bearer("not.a.jwt"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	tokenServ := service.NewTokenService("access", "refresh", time.Hour, time.Hour)
	r := newGuardedRouter(tokenServ)

	// Un token de refresco jamás abre un endpoint protegido por acceso.
	refresh, err := tokenServ.IssueRefreshToken("u1", domain.RoleUser, 0)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	rec := performRequest(r, http.MethodGet, "/guarded", nil, bearer(refresh))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokenServ := service.NewTokenService("access", "refresh", time.Hour, time.Hour)
	r := newGuardedRouter(tokenServ)

	token, err := tokenServ.IssueAccessToken("u1", domain.RoleUser, 0)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	rec := performRequest(r, http.MethodGet, "/guarded", nil, bearer(token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(rec).Data.(map[string]any)
	if data["id"] != "u1" {
		t.Fatalf("expected claims propagated, got %+v", data)
	}
}

func TestRequireRoles_ForbidsOutsiders(t *testing.T) {
	tokenServ := service.NewTokenService("access", "refresh", time.Hour, time.Hour)
	r := newGuardedRouter(tokenServ, domain.RoleAdmin, domain.RoleSuperAdmin)

	token, err := tokenServ.IssueAccessToken("u1", domain.RoleUser, 0)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	rec := performRequest(r, http.MethodGet, "/guarded", nil, bearer(token))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if resp := decodeEnvelope(rec); resp.Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %q", resp.Code)
	}
}

func TestRequireRoles_AllowsMatchingRole(t *testing.T) {
	tokenServ := service.NewTokenService("access", "refresh", time.Hour, time.Hour)
	r := newGuardedRouter(tokenServ, domain.RoleAdmin, domain.RoleSuperAdmin)

	token, err := tokenServ.IssueAccessToken("a1", domain.RoleAdmin, 0)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	rec := performRequest(r, http.MethodGet, "/guarded", nil, bearer(token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
