package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son fallos de
// validación locales y recuperables: ninguno deja escrituras parciales.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrNotStockTracked     = errors.New("la categoría no maneja stock")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrTransactionClosed   = errors.New("la transacción está cerrada")
	ErrReceiptLocked       = errors.New("el recibo está completado y no admite cambios")
	ErrLinkedProductsExist = errors.New("existen productos vinculados")
)
