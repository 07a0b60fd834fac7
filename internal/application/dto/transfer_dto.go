package dto

import "time"

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromDepotID   string `json:"from_depot_id"`
	ToDepotID     string `json:"to_depot_id"`
	ProductID     string `json:"product_id"`
	TotalQuantity int64  `json:"total_quantity"`
}

// DistributeRequest body para POST /api/transfers/:id/distribute.
// Allocation mapea lote → destino → cantidad; el destino es el ID de un
// depósito secundario o "venta_directa".
type DistributeRequest struct {
	Allocation map[string]map[string]int64 `json:"allocation"`
}

// TransferResponse representación de un traslado.
type TransferResponse struct {
	ID            string     `json:"id"`
	FromID        string     `json:"fromId"`
	FromName      string     `json:"fromName"`
	ToID          string     `json:"toId"`
	ToName        string     `json:"toName"`
	ProductID     string     `json:"productId"`
	ProductName   string     `json:"productName"`
	TotalQuantity int64      `json:"totalQuantity"`
	Lotes         []LotDTO   `json:"lotes"`
	DirectSales   []LotDTO   `json:"directSales,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	ReceivedAt    *time.Time `json:"receivedAt,omitempty"`
	DistributedAt *time.Time `json:"distributedAt,omitempty"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
