package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/authz"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/infrastructure/cache"
)

// memPermissionRepo fake en memoria que cuenta las consultas para verificar
// los hits de caché.
type memPermissionRepo struct {
	rows     map[string]*entity.UserPermission
	getCalls int
}

func newMemPermissionRepo() *memPermissionRepo {
	return &memPermissionRepo{rows: make(map[string]*entity.UserPermission)}
}

func (r *memPermissionRepo) key(level, module string) string { return level + "/" + module }

func (r *memPermissionRepo) Get(userLevelID, module string) (*entity.UserPermission, error) {
	r.getCalls++
	p, ok := r.rows[r.key(userLevelID, module)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPermissionRepo) Upsert(p *entity.UserPermission) error {
	cp := *p
	r.rows[r.key(p.UserLevelID, p.Module)] = &cp
	return nil
}

func (r *memPermissionRepo) ListByLevel(userLevelID string) ([]*entity.UserPermission, error) {
	var out []*entity.UserPermission
	for _, p := range r.rows {
		if p.UserLevelID == userLevelID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newService(t *testing.T) (*authz.PermissionService, *memPermissionRepo) {
	t.Helper()
	repo := newMemPermissionRepo()
	return authz.NewPermissionService(repo, cache.NewTTLCache(time.Minute)), repo
}

func TestPermissions_SinFilaEsDenegacionTotal(t *testing.T) {
	svc, _ := newService(t)

	perms, err := svc.Permissions(context.Background(), "consulta", "stock")
	require.NoError(t, err)
	assert.Equal(t, authz.Permissions{}, perms, "sin fila configurada nada está permitido")

	for _, action := range []string{"view", "add", "edit", "delete"} {
		err := svc.Require(context.Background(), "consulta", "stock", action)
		assert.ErrorIs(t, err, domain.ErrForbidden, "acción %s", action)
	}
}

func TestPermissions_AdminSiempreTieneTodo(t *testing.T) {
	svc, repo := newService(t)

	for _, action := range []string{"view", "add", "edit", "delete"} {
		assert.NoError(t, svc.Require(context.Background(), authz.AdminLevel, "stock", action))
	}
	assert.Zero(t, repo.getCalls, "admin no consulta la tabla de permisos")
}

func TestPermissions_RespetanLaFilaConfigurada(t *testing.T) {
	svc, repo := newService(t)
	require.NoError(t, repo.Upsert(&entity.UserPermission{
		UserLevelID: "bodeguero", Module: "stock", CanView: true, CanAdd: true,
	}))

	assert.NoError(t, svc.Require(context.Background(), "bodeguero", "stock", "view"))
	assert.NoError(t, svc.Require(context.Background(), "bodeguero", "stock", "add"))
	assert.ErrorIs(t, svc.Require(context.Background(), "bodeguero", "stock", "edit"), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Require(context.Background(), "bodeguero", "stock", "delete"), domain.ErrForbidden)
}

func TestPermissions_AccionDesconocidaDenegada(t *testing.T) {
	svc, repo := newService(t)
	require.NoError(t, repo.Upsert(&entity.UserPermission{
		UserLevelID: "bodeguero", Module: "stock",
		CanView: true, CanAdd: true, CanEdit: true, CanDelete: true,
	}))

	err := svc.Require(context.Background(), "bodeguero", "stock", "export")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPermissions_LaSegundaConsultaSaleDeCache(t *testing.T) {
	svc, repo := newService(t)
	require.NoError(t, repo.Upsert(&entity.UserPermission{
		UserLevelID: "bodeguero", Module: "stock", CanView: true,
	}))

	_, err := svc.Permissions(context.Background(), "bodeguero", "stock")
	require.NoError(t, err)
	_, err = svc.Permissions(context.Background(), "bodeguero", "stock")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)

	// La denegación (sin fila) también se cachea
	_, err = svc.Permissions(context.Background(), "consulta", "stock")
	require.NoError(t, err)
	_, err = svc.Permissions(context.Background(), "consulta", "stock")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCalls)
}

func TestUpdatePermission_InvalidaSoloLaClaveAfectada(t *testing.T) {
	svc, repo := newService(t)
	require.NoError(t, repo.Upsert(&entity.UserPermission{
		UserLevelID: "bodeguero", Module: "stock", CanView: true,
	}))
	require.NoError(t, repo.Upsert(&entity.UserPermission{
		UserLevelID: "bodeguero", Module: "categories", CanView: true,
	}))

	// Calentar la caché de ambos módulos
	_, err := svc.Permissions(context.Background(), "bodeguero", "stock")
	require.NoError(t, err)
	_, err = svc.Permissions(context.Background(), "bodeguero", "categories")
	require.NoError(t, err)
	require.Equal(t, 2, repo.getCalls)

	// Revocar stock: el cambio es visible de inmediato
	require.NoError(t, svc.UpdatePermission(context.Background(), &entity.UserPermission{
		UserLevelID: "bodeguero", Module: "stock",
	}))
	err = svc.Require(context.Background(), "bodeguero", "stock", "view")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 3, repo.getCalls, "la clave invalidada se relee de la BD")

	// La entrada de categories sigue cacheada
	assert.NoError(t, svc.Require(context.Background(), "bodeguero", "categories", "view"))
	assert.Equal(t, 3, repo.getCalls)
}

func TestUpdatePermission_ValidaNivelYModulo(t *testing.T) {
	svc, _ := newService(t)

	err := svc.UpdatePermission(context.Background(), &entity.UserPermission{Module: "stock"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = svc.UpdatePermission(context.Background(), &entity.UserPermission{UserLevelID: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
