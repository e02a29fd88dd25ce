package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mediahub/internal/domain"
	"mediahub/internal/repository"
)

// AdminService administra cuentas desde el panel. Aplica las reglas de
// protección sobre super_admin y auto-borrado.
type AdminService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRole    = errors.New("invalid role")
)

func NewAdminService(logger *zap.Logger, users repository.UserRepository) *AdminService {
	return &AdminService{logger: logger, users: users}
}

type AdminUserInput struct {
	Name     string
	Email    string
	Role     domain.Role
	Password string
	Avatar   string
	Bio      string
}

// ListAdmins devuelve todas las cuentas administrativas.
func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRoles(ctx, []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin})
}

// CreateUser da de alta una cuenta administrativa. El email debe ser único
// entre cuentas admin/super_admin.
func (s *AdminService) CreateUser(ctx context.Context, input AdminUserInput) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return domain.User{}, ErrDuplicateEmail
	}
	role := input.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if !role.Valid() || !role.IsAdmin() {
		return domain.User{}, ErrInvalidRole
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	var passwordHash string
	if password := strings.TrimSpace(input.Password); password != "" {
		hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		passwordHash = string(hashBytes)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		IsGuest:      false,
		Role:         role,
		Avatar:       input.Avatar,
		Bio:          input.Bio,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UpdateUser modifica una cuenta. Un objetivo super_admin solo puede ser
// tocado por un llamador super_admin.
func (s *AdminService) UpdateUser(ctx context.Context, callerRole domain.Role, targetID string, input AdminUserInput) (domain.User, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if target.Role == domain.RoleSuperAdmin && callerRole != domain.RoleSuperAdmin {
		return domain.User{}, ErrForbidden
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		target.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != target.Email {
		if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != target.ID {
			return domain.User{}, ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}
		target.Email = email
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			return domain.User{}, ErrInvalidRole
		}
		target.Role = input.Role
	}
	if input.Avatar != "" {
		target.Avatar = input.Avatar
	}
	if input.Bio != "" {
		target.Bio = input.Bio
	}

	if err := s.users.Update(ctx, target); err != nil {
		return domain.User{}, err
	}
	return target, nil
}

// DeleteUser elimina una cuenta. Un super_admin nunca se borra y nadie se
// borra a sí mismo, sin importar el rol del llamador.
func (s *AdminService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if target.Role == domain.RoleSuperAdmin {
		return ErrForbidden
	}
	if callerID == targetID {
		return ErrForbidden
	}

	return s.users.Delete(ctx, targetID)
}
