package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Errores del libro de lotes.
	ErrLotNotFound             = errors.New("lote no encontrado")
	ErrInsufficientLotQuantity = errors.New("cantidad insuficiente en el lote")

	// Errores de las máquinas de estado (traslados, ajustes, ventas).
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrAllocationMismatch     = errors.New("la asignación no coincide con los lotes del traslado")
	ErrStaleLotState          = errors.New("el lote cambió desde que fue listado")

	// ErrStoreContention se devuelve cuando una transacción agotó sus reintentos
	// por conflictos de escritura. El caller puede reintentar la operación completa.
	ErrStoreContention = errors.New("contención en el almacén, reintente la operación")
)
