package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mediahub/internal/db"
	"mediahub/internal/domain"
	"mediahub/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	pool *pgxpool.Pool,
	tokenServ *service.TokenService,
	authH *AuthHandler,
	adminH *AdminHandler,
	categoryH *CategoryHandler,
	contentH *ContentHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := db.Ping(c.Request.Context(), pool); err != nil {
				respondFailed(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable")
				return
			}
		}
		respondSuccess(c, http.StatusOK, "ok", nil)
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/guest-login", authH.GuestLogin)
	auth.POST("/send-otp", authH.SendOTP)
	auth.POST("/verify-otp", authH.VerifyOTP)
	auth.POST("/refresh-token", authH.RefreshToken)
	auth.GET("/profile", RequireAuth(tokenServ), authH.Profile)

	api.GET("/categories", categoryH.List)
	api.GET("/categories/:id", categoryH.Get)
	api.GET("/contents", contentH.ListPublished)
	api.GET("/contents/:id", contentH.Get)
	api.POST("/contents/:id/download", RequireAuth(tokenServ), contentH.Download)

	admin := api.Group("/admin")
	admin.POST("/login", adminH.Login)
	admin.POST("/refresh-token", adminH.RefreshToken)

	adminAuthed := admin.Group("", RequireAuth(tokenServ), RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin))
	adminAuthed.GET("/profile", adminH.Profile)

	adminAuthed.GET("/contents", contentH.ListAll)
	adminAuthed.POST("/contents", contentH.Create)
	adminAuthed.PUT("/contents/:id", contentH.Update)
	adminAuthed.DELETE("/contents/:id", contentH.Delete)

	adminAuthed.POST("/categories", categoryH.Create)
	adminAuthed.PUT("/categories/:id", categoryH.Update)
	adminAuthed.DELETE("/categories/:id", categoryH.Delete)

	// Gestión de cuentas: solo super_admin.
	superOnly := adminAuthed.Group("", RequireRoles(domain.RoleSuperAdmin))
	superOnly.GET("/users", adminH.ListUsers)
	superOnly.POST("/users", adminH.CreateUser)
	superOnly.PUT("/users/:id", adminH.UpdateUser)
	superOnly.DELETE("/users/:id", adminH.DeleteUser)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
