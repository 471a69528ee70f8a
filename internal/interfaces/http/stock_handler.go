package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/catalog"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/ledger"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del ledger de stock (protegido).
type StockHandler struct {
	apply   *ledger.ApplyMovementUseCase
	bulk    *ledger.BulkAdjustmentUseCase
	queries *ledger.MovementQueryUseCase
	catalog *catalog.CategoryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	apply *ledger.ApplyMovementUseCase,
	bulk *ledger.BulkAdjustmentUseCase,
	queries *ledger.MovementQueryUseCase,
	catalogUC *catalog.CategoryUseCase,
) *StockHandler {
	return &StockHandler{apply: apply, bulk: bulk, queries: queries, catalog: catalogUC}
}

// CreateMovement registra un movimiento manual (in/out/adjustment).
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.apply.Apply(c.Context(), ledger.MovementInput{
		CategoryID:    in.CategoryID,
		Type:          entity.MovementType(in.MovementType),
		Quantity:      in.Quantity,
		ReferenceType: entity.ReferenceType(in.ReferenceType),
		ReferenceID:   in.ReferenceID,
		ActorID:       GetUserID(c),
		Notes:         in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToApplyMovementResponse(result))
}

// BulkAdjust aplica un lote de ajustes relativos; los fallos por entrada van
// dentro del resultado, nunca abortan el lote.
func (h *StockHandler) BulkAdjust(c *fiber.Ctx) error {
	var in dto.BulkAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entries := make([]ledger.BulkEntry, 0, len(in.Adjustments))
	for _, a := range in.Adjustments {
		entries = append(entries, ledger.BulkEntry{
			CategoryID: a.CategoryID,
			Delta:      a.Adjustment,
			Notes:      a.Notes,
		})
	}
	result, err := h.bulk.ApplyBulk(c.Context(), GetUserID(c), entries)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetMovement devuelve un movimiento por id.
func (h *StockHandler) GetMovement(c *fiber.Ctx) error {
	movement, err := h.queries.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(movement))
}

// ListMovements lista los movimientos de una categoría, con rango de fechas opcional.
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("categoryID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de categoría inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		to = &t
	}

	movements, err := h.queries.ListByCategory(c.Context(), int64(categoryID), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(movements),
		"movements": dto.ToMovementResponses(movements),
	})
}

// RecentMovements lista los últimos movimientos de todas las categorías.
func (h *StockHandler) RecentMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	movements, err := h.queries.Recent(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(movements),
		"movements": dto.ToMovementResponses(movements),
	})
}

// Summary resumen de stock por categoría.
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	lowOnly := c.QueryBool("low_stock_only", false)
	summary, err := h.catalog.Summary(c.Context(), lowOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total_categories":   summary.TotalCategories,
		"low_stock_count":    summary.LowStockCount,
		"out_of_stock_count": summary.OutOfStockCount,
		"categories":         dto.ToCategoryResponses(summary.Categories),
	})
}

// Alerts alertas de bajo stock con urgencia y faltante.
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.catalog.Alerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, fiber.Map{
			"category": dto.ToCategoryResponse(a.Category),
			"urgency":  a.Urgency,
			"shortage": a.Shortage,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}
