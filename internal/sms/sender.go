package sms

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sender define la interfaz para la entrega fuera de banda de códigos OTP.
type Sender interface {
	SendOTP(ctx context.Context, phone, code string, expiresAt time.Time) error
}

// DisabledSender descarta los envíos registrándolos en el log. Es el
// sender por defecto mientras no haya gateway configurado.
type DisabledSender struct {
	logger *zap.Logger
}

func NewDisabledSender(logger *zap.Logger) *DisabledSender {
	return &DisabledSender{logger: logger}
}

func (s *DisabledSender) SendOTP(_ context.Context, phone, _ string, _ time.Time) error {
	if s.logger != nil {
		s.logger.Info("sms delivery disabled, otp dropped", zap.String("phone", phone))
	}
	return nil
}
