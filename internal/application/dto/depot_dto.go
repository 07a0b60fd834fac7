package dto

import "time"

// CreateDepotRequest body para POST /api/depots.
type CreateDepotRequest struct {
	Name string `json:"name"`
	Type string `json:"type"` // primario | secundario
	City string `json:"city"`
}

// DepotResponse representación de un depósito.
type DepotResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DepotListResponse listado paginado de depósitos.
type DepotListResponse struct {
	Items []DepotResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
