package dto

import "time"

// MovementResponse un registro del historial append-only de movimientos.
type MovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	DepotID   string    `json:"depotId"`
	ProductID string    `json:"productId"`
	Lote      string    `json:"lote"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
