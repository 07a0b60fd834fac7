package entity

import "time"

// Estados de un traslado. El flujo es pendiente → recibida → distribuida;
// ninguna transición salta ni retrocede estados.
const (
	TransferStatusPending     = "pendiente"
	TransferStatusReceived    = "recibida"
	TransferStatusDistributed = "distribuida"
)

// DirectSaleKey es el destino especial de una asignación que representa venta
// directa durante la distribución: esa cantidad sale del sistema y no se
// escribe en ningún libro de lotes, solo queda auditada en el traslado.
const DirectSaleKey = "venta_directa"

// TransferLot es una porción de un lote capturada al crear el traslado.
// Conserva la clave original del lote de origen.
type TransferLot struct {
	Lote     string `json:"lote"`
	Cantidad int64  `json:"cantidad"`
}

// Transfer representa un traslado de stock desde el depósito primario.
// Entre la creación y la distribución, el stock existe únicamente en el
// snapshot Lots del traslado (en tránsito), no en ningún libro.
type Transfer struct {
	ID            string
	FromDepotID   string
	ToDepotID     string // destino nominal durante la fase pendiente
	ProductID     string
	Lots          []TransferLot
	TotalQuantity int64
	DirectSales   []TransferLot // porción desviada a venta directa al distribuir
	Status        string
	CreatedAt     time.Time
	ReceivedAt    *time.Time
	DistributedAt *time.Time
	CreatedBy     string
}
