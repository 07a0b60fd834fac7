package dto

import "time"

// CreateAdjustmentRequest body para POST /api/adjustments.
// Cantidad negativa descuenta de inmediato (FEFO, o del lote indicado en Lote);
// cantidad positiva crea una solicitud pendiente de aprobación.
type CreateAdjustmentRequest struct {
	DepotID        string `json:"depot_id"`
	ProductID      string `json:"product_id"`
	Quantity       int64  `json:"quantity"`
	AdjustmentType string `json:"adjustment_type"` // merma | muestra | correccion | otro
	Notes          string `json:"notes"`
	Lote           string `json:"lote,omitempty"`
}

// RejectAdjustmentRequest body para POST /api/adjustments/:id/reject.
type RejectAdjustmentRequest struct {
	Reason string `json:"reason"`
}

// AdjustmentResponse representación de un ajuste.
type AdjustmentResponse struct {
	ID              string     `json:"id"`
	DepotID         string     `json:"depotId"`
	DepotName       string     `json:"depotName"`
	ProductID       string     `json:"productId"`
	Quantity        int64      `json:"quantity"`
	AdjustmentType  string     `json:"adjustmentType"`
	Notes           string     `json:"notes"`
	RequesterID     string     `json:"requesterId"`
	RequesterName   string     `json:"requesterName"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
}

// AdjustmentListResponse listado paginado de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
