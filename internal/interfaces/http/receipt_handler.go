package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/receiving"
)

// ReceiptHandler maneja las peticiones HTTP de recibos de compra (protegido).
type ReceiptHandler struct {
	uc *receiving.ReceivingUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *receiving.ReceivingUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create crea un recibo con sus líneas; cada línea con stock genera la entrada
// en el ledger y opcionalmente los activos serializados.
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := receiving.CreateReceiptInput{
		ReceiptNumber: in.ReceiptNumber,
		PONumber:      in.PONumber,
		SupplierID:    in.SupplierID,
		ReceiptDate:   in.ReceiptDate,
		Status:        in.Status,
		Notes:         in.Notes,
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, item.ToItemInput())
	}
	result, err := h.uc.CreateReceipt(c.Context(), GetUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReceiptResultResponse(result))
}

// GetByID devuelve un recibo con sus líneas.
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	receipt, items, err := h.uc.GetReceipt(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReceiptResponse(receipt, items))
}

// List lista recibos paginados.
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	receipts, err := h.uc.ListReceipts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(receipts),
		"receipts": dto.ToReceiptResponses(receipts),
	})
}

// Update edita la cabecera; un recibo completado solo admite pasar a cancelled.
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.UpdateReceipt(c.Context(), int64(id), receiving.UpdateReceiptInput{
		ReceiptNumber: in.ReceiptNumber,
		PONumber:      in.PONumber,
		SupplierID:    in.SupplierID,
		ReceiptDate:   in.ReceiptDate,
		Status:        in.Status,
		Notes:         in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReceiptResponse(receipt, nil))
}

// Delete elimina un recibo no completado revirtiendo el ledger.
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	movements, err := h.uc.DeleteReceipt(c.Context(), GetUserID(c), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	reversals := make([]*dto.ApplyMovementResponse, 0, len(movements))
	for _, m := range movements {
		reversals = append(reversals, dto.ToApplyMovementResponse(m))
	}
	return c.JSON(fiber.Map{"message": "recibo eliminado", "reversals": reversals})
}

// AddItem agrega una línea a un recibo no completado.
func (h *ReceiptHandler) AddItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.ReceiptItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.AddItem(c.Context(), GetUserID(c), int64(id), in.ToItemInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResultResponse(result))
}

// RemoveItem retira una línea de un recibo no completado.
func (h *ReceiptHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	itemID, err := c.ParamsInt("itemID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de línea inválido"})
	}
	movement, err := h.uc.RemoveItem(c.Context(), GetUserID(c), int64(id), int64(itemID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "línea retirada",
		"reversal": dto.ToApplyMovementResponse(movement),
	})
}

func toItemResultResponse(r *receiving.ItemResult) fiber.Map {
	return fiber.Map{
		"item":     dto.ToReceiptItemResponse(r.Item),
		"movement": dto.ToApplyMovementResponse(r.Movement),
		"products": dto.ToProductResponses(r.Products),
	}
}

func toReceiptResultResponse(r *receiving.ReceiptResult) fiber.Map {
	items := make([]fiber.Map, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, toItemResultResponse(it))
	}
	return fiber.Map{
		"receipt": dto.ToReceiptResponse(r.Receipt, nil),
		"items":   items,
	}
}
