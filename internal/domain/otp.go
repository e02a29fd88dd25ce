package domain

import "time"

// OTP es un código de un solo uso ligado a un usuario. Solo el registro
// más reciente, no usado y no vencido cuenta para la verificación.
type OTP struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}
