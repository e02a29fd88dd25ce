package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mediahub/internal/domain"
	"mediahub/internal/service"
)

const authClaimsKey = "auth_claims"

// RequireAuth valida el bearer token y guarda los claims en el contexto.
// Sin token válido el handler protegido nunca se ejecuta.
func RequireAuth(tokenServ *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenServ == nil {
			abortFailed(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "token service not configured")
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			abortFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token")
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tokenServ.VerifyAccessToken(token)
		if err != nil {
			abortFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// RequireRoles corta con 403 si el rol de los claims no está en la lista.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			abortFailed(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}
		for _, role := range roles {
			if domain.Role(claims.Role) == role {
				c.Next()
				return
			}
		}
		abortFailed(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	}
}

// GetAuthClaims obtiene los claims del token desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
