package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mediahub/internal/domain"
	"mediahub/internal/repository"
)

// OTPService genera y verifica códigos de un solo uso.
type OTPService struct {
	logger      *zap.Logger
	otps        repository.OTPRepository
	masterCode  string
	ttl         time.Duration
	maxAttempts int
}

var (
	ErrNoActiveOTP = errors.New("no active otp")
	ErrMaxAttempts = errors.New("max attempts exceeded")
	ErrOTPInvalid  = errors.New("otp invalid")
)

const (
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 3
)

// NewOTPService crea el servicio. masterCode vacío deshabilita el bypass.
func NewOTPService(logger *zap.Logger, otps repository.OTPRepository, masterCode string) *OTPService {
	return &OTPService{
		logger:      logger,
		otps:        otps,
		masterCode:  masterCode,
		ttl:         otpTTL,
		maxAttempts: otpMaxAttempts,
	}
}

// Generate persiste un código nuevo de 4 dígitos para el usuario y lo
// devuelve para su entrega fuera de banda. Los códigos previos no usados
// quedan intactos; solo el más reciente cuenta al verificar.
func (s *OTPService) Generate(ctx context.Context, userID string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%04d", n.Int64())

	now := time.Now().UTC()
	otp := domain.OTP{
		ID:        uuid.NewString(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		IsUsed:    false,
		Attempts:  0,
		CreatedAt: now,
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return "", err
	}
	return code, nil
}

// Verify valida el código presentado contra el registro activo más
// reciente. Todo camino de fallo deja attempts/is_used persistidos antes
// de retornar.
func (s *OTPService) Verify(ctx context.Context, userID, code string) error {
	record, err := s.otps.LatestActive(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoActiveOTP
		}
		return err
	}

	// El tope se evalúa antes de comparar el código.
	if record.Attempts >= s.maxAttempts {
		return ErrMaxAttempts
	}

	if code != record.Code && !s.isMasterCode(code) {
		if err := s.otps.IncrementAttempts(ctx, record.ID); err != nil {
			return err
		}
		return ErrOTPInvalid
	}

	return s.otps.MarkUsed(ctx, record.ID)
}

// isMasterCode compara contra el código maestro de pre-producción. Es una
// puerta trasera conocida: habilitarla en producción anula el OTP.
func (s *OTPService) isMasterCode(code string) bool {
	return s.masterCode != "" && code == s.masterCode
}
