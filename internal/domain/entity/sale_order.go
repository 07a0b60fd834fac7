package entity

import "time"

// Estados de una orden de venta.
const (
	SaleStatusPending   = "pendiente"
	SaleStatusFulfilled = "despachada"
)

// SaleOrder representa una orden de venta originada fuera del motor
// (facturación). El motor solo la despacha contra un lote puntual de un
// depósito; al despachar se registran DepotID y Lote utilizados.
type SaleOrder struct {
	ID            string
	ProductID     string
	Quantity      int64
	CustomerName  string
	InvoiceNumber string
	Status        string
	DepotID       string // depósito elegido al despachar
	Lote          string // lote consumido al despachar
	CreatedAt     time.Time
	FulfilledAt   *time.Time
}
