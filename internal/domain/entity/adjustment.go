package entity

import "time"

// Estados de un ajuste. Solo los ajustes positivos pasan por pendiente;
// los negativos se aplican en forma síncrona y nacen resueltos.
const (
	AdjustmentStatusPending  = "pendiente"
	AdjustmentStatusApproved = "aprobado"
	AdjustmentStatusRejected = "rechazado"
)

// Tipos de ajuste.
const (
	AdjustmentTypeShrinkage  = "merma"
	AdjustmentTypeSample     = "muestra"
	AdjustmentTypeCorrection = "correccion"
	AdjustmentTypeOther      = "otro"
)

// ValidAdjustmentType verifica que el tipo pertenezca al enum.
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentTypeShrinkage, AdjustmentTypeSample, AdjustmentTypeCorrection, AdjustmentTypeOther:
		return true
	}
	return false
}

// Adjustment representa una corrección manual de stock con signo.
// Quantity < 0 descuenta de inmediato (FEFO o lote puntual); Quantity > 0
// queda pendiente hasta que un usuario master lo apruebe o rechace.
type Adjustment struct {
	ID              string
	DepotID         string
	ProductID       string
	Quantity        int64  // con signo
	AdjustmentType  string
	Notes           string // obligatorio
	Lote            string // opcional: lote puntual para ajustes negativos
	RequesterID     string
	RequesterName   string
	Status          string
	RejectionReason string
	CreatedAt       time.Time
	ResolvedAt      *time.Time
	ResolvedBy      string
}
