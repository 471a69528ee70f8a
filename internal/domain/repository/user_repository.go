package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}

// UserPermissionRepository define el puerto para permisos por nivel/módulo (DIP).
type UserPermissionRepository interface {
	Get(userLevelID, module string) (*entity.UserPermission, error)
	Upsert(permission *entity.UserPermission) error
	ListByLevel(userLevelID string) ([]*entity.UserPermission, error)
}
