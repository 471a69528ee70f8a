package authz

import (
	"context"
	"fmt"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	"github.com/jhoicas/Activos-api/internal/infrastructure/cache"
)

// AdminLevel nivel con acceso total, sin consultar la tabla de permisos.
const AdminLevel = "admin"

// Permissions permisos efectivos de un nivel sobre un módulo.
type Permissions struct {
	CanView   bool `json:"can_view"`
	CanAdd    bool `json:"can_add"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

var allPermissions = Permissions{CanView: true, CanAdd: true, CanEdit: true, CanDelete: true}

// PermissionService resuelve permisos por nivel/módulo con caché. La falta de
// fila es denegación total (default deny); admin siempre tiene todo.
type PermissionService struct {
	permRepo repository.UserPermissionRepository
	cache    cache.Cache
}

// NewPermissionService construye el servicio con la caché inyectada.
func NewPermissionService(permRepo repository.UserPermissionRepository, c cache.Cache) *PermissionService {
	return &PermissionService{permRepo: permRepo, cache: c}
}

func cacheKey(userLevelID, module string) string {
	return fmt.Sprintf("%s-%s", userLevelID, module)
}

// Permissions devuelve los permisos efectivos del nivel sobre el módulo.
func (s *PermissionService) Permissions(ctx context.Context, userLevelID, module string) (Permissions, error) {
	if userLevelID == AdminLevel {
		return allPermissions, nil
	}

	key := cacheKey(userLevelID, module)
	if v, ok := s.cache.Get(key); ok {
		return v.(Permissions), nil
	}

	row, err := s.permRepo.Get(userLevelID, module)
	if err != nil {
		return Permissions{}, fmt.Errorf("error consultando permisos: %w", err)
	}
	var perms Permissions
	if row != nil {
		perms = Permissions{
			CanView:   row.CanView,
			CanAdd:    row.CanAdd,
			CanEdit:   row.CanEdit,
			CanDelete: row.CanDelete,
		}
	}
	s.cache.Set(key, perms)
	return perms, nil
}

// Require verifica una acción concreta (view, add, edit, delete) y devuelve
// ErrForbidden si el nivel no la tiene concedida.
func (s *PermissionService) Require(ctx context.Context, userLevelID, module, action string) error {
	perms, err := s.Permissions(ctx, userLevelID, module)
	if err != nil {
		return err
	}
	var allowed bool
	switch action {
	case "view":
		allowed = perms.CanView
	case "add":
		allowed = perms.CanAdd
	case "edit":
		allowed = perms.CanEdit
	case "delete":
		allowed = perms.CanDelete
	}
	if !allowed {
		return domain.ErrForbidden
	}
	return nil
}

// UpdatePermission persiste el permiso e invalida solo la clave afectada,
// así el cambio es visible de inmediato sin vaciar la caché entera.
func (s *PermissionService) UpdatePermission(ctx context.Context, p *entity.UserPermission) error {
	if p.UserLevelID == "" || p.Module == "" {
		return domain.ErrInvalidInput
	}
	if err := s.permRepo.Upsert(p); err != nil {
		return fmt.Errorf("error guardando permiso: %w", err)
	}
	s.cache.Invalidate(cacheKey(p.UserLevelID, p.Module))
	return nil
}

// ListByLevel permisos configurados de un nivel (para pantallas de admin).
func (s *PermissionService) ListByLevel(ctx context.Context, userLevelID string) ([]*entity.UserPermission, error) {
	return s.permRepo.ListByLevel(userLevelID)
}
