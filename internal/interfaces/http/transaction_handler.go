package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/assets"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// TransactionHandler maneja las peticiones HTTP de transacciones de activos (protegido).
type TransactionHandler struct {
	uc *assets.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *assets.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create crea una transacción con sus líneas y aplica los efectos de estado.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := assets.CreateTransactionInput{
		Type:            entity.TransactionType(in.TransactionType),
		ReferenceNo:     in.ReferenceNo,
		FirstPerson:     in.FirstPerson,
		SecondPerson:    in.SecondPerson,
		Location:        in.Location,
		TransactionDate: in.TransactionDate,
		Notes:           in.Notes,
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, item.ToItemInput())
	}
	result, err := h.uc.Create(c.Context(), GetUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transaction": dto.ToTransactionResponse(result.Transaction, result.Items),
		"products":    dto.ToProductResponses(result.Products),
	})
}

// GetByID devuelve una transacción con sus líneas.
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	transaction, items, err := h.uc.Get(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionResponse(transaction, items))
}

// List lista transacciones paginadas.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	transactions, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":        len(transactions),
		"transactions": dto.ToTransactionResponses(transactions),
	})
}

// Delete elimina una transacción abierta (revierte check_out).
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transacción eliminada"})
}

// Close cierra una transacción con al menos una línea.
func (h *TransactionHandler) Close(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	transaction, err := h.uc.Close(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionResponse(transaction, nil))
}

// Reopen reabre una transacción cerrada.
func (h *TransactionHandler) Reopen(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	transaction, err := h.uc.Reopen(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransactionResponse(transaction, nil))
}

// AddItem agrega un activo a una transacción abierta.
func (h *TransactionHandler) AddItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.TransactionItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, product, err := h.uc.AddItem(c.Context(), int64(id), in.ToItemInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"item":    dto.ToTransactionItemResponse(item),
		"product": dto.ToProductResponse(product),
	})
}

// RemoveItem retira un activo de una transacción abierta (revierte check_out).
func (h *TransactionHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	itemID, err := c.ParamsInt("itemID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de línea inválido"})
	}
	product, err := h.uc.RemoveItem(c.Context(), int64(id), int64(itemID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "línea retirada",
		"product": dto.ToProductResponse(product),
	})
}
