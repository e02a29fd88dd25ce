package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mediahub/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
// Los métodos de lectura devuelven pgx.ErrNoRows cuando no hay registro;
// la capa de servicio lo traduce a errores de dominio.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByDevice(ctx context.Context, deviceID string) (domain.User, error)
	GetByPhone(ctx context.Context, phone string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id string) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, name, phone, email, device_id, password_hash, is_guest, role, avatar, bio, created_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, name, phone, email, device_id, password_hash, is_guest, role, avatar, bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.Email,
		user.DeviceID,
		user.PasswordHash,
		user.IsGuest,
		string(user.Role),
		user.Avatar,
		user.Bio,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByDevice busca al invitado dueño del device id.
func (r *PgUserRepository) GetByDevice(ctx context.Context, deviceID string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE device_id = $1 AND role = 'guest'`, deviceID)
}

// GetByPhone busca por teléfono entre cuentas de rol user.
func (r *PgUserRepository) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1 AND role = 'user'`, phone)
}

// GetByEmail busca por email entre cuentas administrativas.
func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND role IN ('admin', 'super_admin')`, email)
}

func (r *PgUserRepository) ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = ANY($1) ORDER BY created_at DESC`, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) Update(ctx context.Context, user domain.User) error {
	const query = `
		UPDATE users
		SET name = $2, phone = $3, email = $4, password_hash = $5, is_guest = $6, role = $7, avatar = $8, bio = $9
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.Email,
		user.PasswordHash,
		user.IsGuest,
		string(user.Role),
		user.Avatar,
		user.Bio,
	)
	return err
}

func (r *PgUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u    domain.User
		role string
		ts   time.Time
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Phone,
		&u.Email,
		&u.DeviceID,
		&u.PasswordHash,
		&u.IsGuest,
		&role,
		&u.Avatar,
		&u.Bio,
		&ts,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = ts
	return u, nil
}

func (r *PgUserRepository) getOne(ctx context.Context, query string, args ...any) (domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, query, args...))
}
