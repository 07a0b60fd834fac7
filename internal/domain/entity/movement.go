package entity

import "time"

// Tipos de movimiento del registro append-only.
const (
	MovementTypeProduction   = "PRODUCCION"
	MovementTypeTransferOut  = "TRASLADO_SALIDA"
	MovementTypeDistribution = "DISTRIBUCION_ENTRADA"
	MovementTypeAdjustment   = "AJUSTE"
	MovementTypeSale         = "VENTA"
)

// Movement es un registro de auditoría append-only de cada mutación del libro
// de lotes. Se escribe en la misma transacción que la mutación; nunca se
// actualiza ni se borra.
type Movement struct {
	ID        string
	Type      string
	DepotID   string
	ProductID string
	Lote      string
	Quantity  int64  // positivo entrada, negativo salida
	Reference string // ID del traslado, ajuste u orden de venta
	CreatedAt time.Time
	CreatedBy string
}
