package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mediahub/internal/domain"
	"mediahub/internal/repository"
	"mediahub/internal/sms"
	"mediahub/internal/sso"
)

// AuthService orquesta los flujos de autenticación: guest login, OTP por
// teléfono, refresh y login administrativo vía SSO.
type AuthService struct {
	logger    *zap.Logger
	users     repository.UserRepository
	otpServ   *OTPService
	tokenServ *TokenService
	smsSender sms.Sender
	verifier  sso.Verifier
	limiter   SendLimiter
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRateLimited         = errors.New("rate limited")
	ErrNotAdmin            = errors.New("not an admin account")
)

func NewAuthService(
	logger *zap.Logger,
	users repository.UserRepository,
	otpServ *OTPService,
	tokenServ *TokenService,
	smsSender sms.Sender,
	verifier sso.Verifier,
	limiter SendLimiter,
) *AuthService {
	if limiter == nil {
		limiter = NewSendLimiter(10*time.Minute, 3)
	}
	return &AuthService{
		logger:    logger,
		users:     users,
		otpServ:   otpServ,
		tokenServ: tokenServ,
		smsSender: smsSender,
		verifier:  verifier,
		limiter:   limiter,
	}
}

// GuestLogin busca o crea la cuenta invitada del device id y emite tokens.
// Llamadas repetidas con el mismo device id resuelven al mismo usuario.
func (s *AuthService) GuestLogin(ctx context.Context, deviceID string) (TokenPair, error) {
	deviceID = strings.TrimSpace(deviceID)

	user, err := s.users.GetByDevice(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, err
		}
		user = domain.User{
			ID:        uuid.NewString(),
			Name:      "Guest-" + truncate(deviceID, 8),
			DeviceID:  deviceID,
			IsGuest:   true,
			Role:      domain.RoleGuest,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return TokenPair{}, err
		}
	}

	return s.tokenServ.Pair(user)
}

// SendOTP busca o crea la cuenta del teléfono, genera un código y lo
// entrega fuera de banda. El código nunca vuelve al llamador.
func (s *AuthService) SendOTP(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)

	if s.limiter != nil && !s.limiter.Allow(phone) {
		return ErrRateLimited
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		user = domain.User{
			ID:        uuid.NewString(),
			Name:      "User-" + lastN(phone, 4),
			Phone:     phone,
			IsGuest:   false,
			Role:      domain.RoleUser,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	}

	code, err := s.otpServ.Generate(ctx, user.ID)
	if err != nil {
		return err
	}

	if s.smsSender != nil {
		expiresAt := time.Now().UTC().Add(otpTTL)
		if err := s.smsSender.SendOTP(ctx, phone, code, expiresAt); err != nil {
			// La entrega es best-effort: el registro ya quedó persistido.
			s.logger.Warn("otp delivery failed", zap.Error(err), zap.String("phone", phone))
		}
	}
	return nil
}

// VerifyOTP valida el código del teléfono y emite tokens al acertar.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (TokenPair, error) {
	user, err := s.users.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, ErrUserNotFound
		}
		return TokenPair{}, err
	}

	if err := s.otpServ.Verify(ctx, user.ID, strings.TrimSpace(code)); err != nil {
		return TokenPair{}, err
	}

	return s.tokenServ.Pair(user)
}

// Refresh valida el token de refresco y emite un par nuevo. El usuario se
// relee del store para que un cambio de rol posterior a la emisión quede
// reflejado en los tokens nuevos.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokenServ.VerifyRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, ErrUserNotFound
		}
		return TokenPair{}, err
	}

	return s.tokenServ.Pair(user)
}

// AdminRefresh es Refresh con la exigencia extra de que la cuenta releída
// siga siendo administrativa.
func (s *AuthService) AdminRefresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokenServ.VerifyRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, ErrNotAdmin
		}
		return TokenPair{}, err
	}
	if !user.Role.IsAdmin() {
		return TokenPair{}, ErrNotAdmin
	}

	return s.tokenServ.Pair(user)
}

// AdminLogin verifica la aserción SSO y emite tokens para la cuenta
// administrativa del email. Las cuentas admin se aprovisionan fuera de
// banda: nunca se crean aquí.
func (s *AuthService) AdminLogin(ctx context.Context, assertion string) (TokenPair, error) {
	if s.verifier == nil {
		return TokenPair{}, sso.ErrAssertionInvalid
	}
	identity, err := s.verifier.Verify(ctx, assertion)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, ErrUserNotFound
		}
		return TokenPair{}, err
	}

	return s.tokenServ.Pair(user)
}

// Profile devuelve la cuenta del id autenticado.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
