package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, password_hash, full_name, email, user_level_id, is_active, created_at, updated_at`

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario y asigna el ID generado.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (username, password_hash, full_name, email, user_level_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		user.Username, user.PasswordHash, user.FullName, user.Email,
		user.UserLevelID, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) getBy(where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email,
		&u.UserLevelID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	return r.getBy("id = $1", id)
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.getBy("username = $1", username)
}

var _ repository.UserPermissionRepository = (*UserPermissionRepo)(nil)

// UserPermissionRepo implementación de UserPermissionRepository sobre
// PostgreSQL (usable con pool o tx).
type UserPermissionRepo struct {
	q Querier
}

// NewUserPermissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserPermissionRepository(q Querier) *UserPermissionRepo {
	return &UserPermissionRepo{q: q}
}

// Get obtiene el permiso de un nivel sobre un módulo; nil si no hay fila.
func (r *UserPermissionRepo) Get(userLevelID, module string) (*entity.UserPermission, error) {
	query := `
		SELECT id, user_level_id, module, can_view, can_add, can_edit, can_delete
		FROM user_permissions WHERE user_level_id = $1 AND module = $2`
	var p entity.UserPermission
	err := r.q.QueryRow(context.Background(), query, userLevelID, module).Scan(
		&p.ID, &p.UserLevelID, &p.Module, &p.CanView, &p.CanAdd, &p.CanEdit, &p.CanDelete,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

// Upsert inserta o actualiza el permiso de un nivel sobre un módulo.
func (r *UserPermissionRepo) Upsert(permission *entity.UserPermission) error {
	query := `
		INSERT INTO user_permissions (user_level_id, module, can_view, can_add, can_edit, can_delete)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_level_id, module)
		DO UPDATE SET can_view = EXCLUDED.can_view, can_add = EXCLUDED.can_add,
		              can_edit = EXCLUDED.can_edit, can_delete = EXCLUDED.can_delete`
	_, err := r.q.Exec(context.Background(), query,
		permission.UserLevelID, permission.Module, permission.CanView,
		permission.CanAdd, permission.CanEdit, permission.CanDelete,
	)
	if err != nil {
		return fmt.Errorf("upsert permission: %w", err)
	}
	return nil
}

// ListByLevel lista los permisos configurados de un nivel.
func (r *UserPermissionRepo) ListByLevel(userLevelID string) ([]*entity.UserPermission, error) {
	query := `
		SELECT id, user_level_id, module, can_view, can_add, can_edit, can_delete
		FROM user_permissions WHERE user_level_id = $1 ORDER BY module`
	rows, err := r.q.Query(context.Background(), query, userLevelID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserPermission
	for rows.Next() {
		var p entity.UserPermission
		if err := rows.Scan(&p.ID, &p.UserLevelID, &p.Module, &p.CanView,
			&p.CanAdd, &p.CanEdit, &p.CanDelete); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
