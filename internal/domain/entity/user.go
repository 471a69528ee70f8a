package entity

import "time"

// User usuario del sistema; el ID autenticado se inyecta como actor
// (CreatedBy) en toda operación mutadora para auditoría.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	UserLevelID  string // admin, bodeguero, consulta...
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPermission permisos CRUD de un nivel de usuario sobre un módulo.
type UserPermission struct {
	ID          int64
	UserLevelID string
	Module      string
	CanView     bool
	CanAdd      bool
	CanEdit     bool
	CanDelete   bool
}
