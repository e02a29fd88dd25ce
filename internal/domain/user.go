package domain

import "time"

// Role define el nivel de privilegio de una cuenta.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsAdmin indica si el rol pertenece a la categoría administrativa.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Valid indica si el rol es uno de los valores conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User representa una cuenta. La credencial primaria depende de la
// categoría del rol: guest usa device id, user usa teléfono y los roles
// administrativos usan email.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	DeviceID     string    `json:"-"`
	PasswordHash string    `json:"-"`
	IsGuest      bool      `json:"is_guest"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
