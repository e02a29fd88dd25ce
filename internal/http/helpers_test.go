package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mediahub/internal/domain"
	"mediahub/internal/service"
	"mediahub/internal/sso"
)

type mockUserRepo struct {
	usersByID map[string]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{usersByID: make(map[string]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByDevice(_ context.Context, deviceID string) (domain.User, error) {
	for _, user := range m.usersByID {
		if user.DeviceID == deviceID && user.Role == domain.RoleGuest {
			return user, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (domain.User, error) {
	for _, user := range m.usersByID {
		if user.Phone == phone && user.Role == domain.RoleUser {
			return user, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range m.usersByID {
		if user.Email == email && user.Role.IsAdmin() {
			return user, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (m *mockUserRepo) ListByRoles(_ context.Context, roles []domain.Role) ([]domain.User, error) {
	var users []domain.User
	for _, user := range m.usersByID {
		for _, role := range roles {
			if user.Role == role {
				users = append(users, user)
			}
		}
	}
	return users, nil
}

func (m *mockUserRepo) Update(_ context.Context, user domain.User) error {
	if _, ok := m.usersByID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.usersByID, id)
	return nil
}

type mockOTPRepo struct {
	records []domain.OTP
}

func newMockOTPRepo() *mockOTPRepo {
	return &mockOTPRepo{}
}

func (m *mockOTPRepo) Create(_ context.Context, otp domain.OTP) error {
	m.records = append(m.records, otp)
	return nil
}

func (m *mockOTPRepo) LatestActive(_ context.Context, userID string) (domain.OTP, error) {
	now := time.Now().UTC()
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.UserID == userID && !r.IsUsed && r.ExpiresAt.After(now) {
			return r, nil
		}
	}
	return domain.OTP{}, pgx.ErrNoRows
}

func (m *mockOTPRepo) IncrementAttempts(_ context.Context, id string) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Attempts++
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockOTPRepo) MarkUsed(_ context.Context, id string) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].IsUsed = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

type mockSMSSender struct {
	lastPhone string
	lastCode  string
}

func (m *mockSMSSender) SendOTP(_ context.Context, phone, code string, _ time.Time) error {
	m.lastPhone = phone
	m.lastCode = code
	return nil
}

type passthroughVerifier struct{}

func (passthroughVerifier) Verify(_ context.Context, assertion string) (sso.Identity, error) {
	if assertion == "" {
		return sso.Identity{}, sso.ErrAssertionInvalid
	}
	return sso.Identity{Email: assertion}, nil
}

type testEnv struct {
	router    *gin.Engine
	users     *mockUserRepo
	otps      *mockOTPRepo
	sender    *mockSMSSender
	tokenServ *service.TokenService
}

func newTestEnv(masterCode string) *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	users := newMockUserRepo()
	otps := newMockOTPRepo()
	sender := &mockSMSSender{}

	tokenServ := service.NewTokenService("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
	otpServ := service.NewOTPService(logger, otps, masterCode)
	authServ := service.NewAuthService(logger, users, otpServ, tokenServ, sender, passthroughVerifier{}, service.NewSendLimiter(time.Minute, 100))
	adminServ := service.NewAdminService(logger, users)

	authH := NewAuthHandler(logger, authServ)
	adminH := NewAdminHandler(logger, authServ, adminServ)

	r := gin.New()
	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/guest-login", authH.GuestLogin)
	auth.POST("/send-otp", authH.SendOTP)
	auth.POST("/verify-otp", authH.VerifyOTP)
	auth.POST("/refresh-token", authH.RefreshToken)
	auth.GET("/profile", RequireAuth(tokenServ), authH.Profile)

	admin := api.Group("/admin")
	admin.POST("/login", adminH.Login)
	admin.POST("/refresh-token", adminH.RefreshToken)

	adminAuthed := admin.Group("", RequireAuth(tokenServ), RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin))
	adminAuthed.GET("/profile", adminH.Profile)

	superOnly := adminAuthed.Group("", RequireRoles(domain.RoleSuperAdmin))
	superOnly.GET("/users", adminH.ListUsers)
	superOnly.POST("/users", adminH.CreateUser)
	superOnly.PUT("/users/:id", adminH.UpdateUser)
	superOnly.DELETE("/users/:id", adminH.DeleteUser)

	return &testEnv{
		router:    r,
		users:     users,
		otps:      otps,
		sender:    sender,
		tokenServ: tokenServ,
	}
}

func performRequest(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(rec *httptest.ResponseRecorder) Envelope {
	var env Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return env
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
