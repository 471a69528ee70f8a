package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
)

// permissionChecker contrato mínimo que necesita el middleware. Lo implementa
// *authz.PermissionService; la interfaz evita el import circular.
type permissionChecker interface {
	Require(ctx context.Context, userLevelID, module, action string) error
}

// RequirePermission devuelve un middleware Fiber que verifica si el nivel del
// token tiene concedida la acción sobre el módulo. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalUserLevelID).
//
// Comportamiento:
//   - 403 Forbidden → sin permiso (o sin fila de permisos: default deny).
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Sin user_level_id en el contexto responde 401.
func RequirePermission(module, action string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userLevelID := GetUserLevelID(c)
		if userLevelID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_level_id no encontrado en el token",
			})
		}

		err := checker.Require(c.Context(), userLevelID, module, action)
		if err == nil {
			return c.Next()
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "sin permiso '" + action + "' sobre el módulo '" + module + "'",
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "PERMISSION_CHECK_FAILED",
			Message: "no se pudo verificar el permiso, intente más tarde",
		})
	}
}
