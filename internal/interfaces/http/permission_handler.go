package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/authz"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// PermissionHandler administra los permisos por nivel/módulo (solo admin).
type PermissionHandler struct {
	svc *authz.PermissionService
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(svc *authz.PermissionService) *PermissionHandler {
	return &PermissionHandler{svc: svc}
}

// Upsert guarda un permiso e invalida la entrada cacheada.
func (h *PermissionHandler) Upsert(c *fiber.Ctx) error {
	var in dto.PermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.svc.UpdatePermission(c.Context(), &entity.UserPermission{
		UserLevelID: in.UserLevelID,
		Module:      in.Module,
		CanView:     in.CanView,
		CanAdd:      in.CanAdd,
		CanEdit:     in.CanEdit,
		CanDelete:   in.CanDelete,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "permiso actualizado"})
}

// ListByLevel devuelve los permisos configurados de un nivel.
func (h *PermissionHandler) ListByLevel(c *fiber.Ctx) error {
	level := c.Params("level")
	permissions, err := h.svc.ListByLevel(c.Context(), level)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(permissions), "permissions": permissions})
}
