package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInvalidMovement       = errors.New("movimiento de inventario inválido")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrPaymentExceedsBalance = errors.New("el pago excede el saldo pendiente de la factura")
	ErrInvalidState          = errors.New("operación inválida para el estado actual del documento")
	ErrConcurrency           = errors.New("conflicto de concurrencia, reintentar la operación")
	ErrSequenceExhausted     = errors.New("consecutivo agotado para el alcance solicitado")
	ErrArithmetic            = errors.New("error aritmético en operación decimal")
)
