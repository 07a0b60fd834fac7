package dto

import "time"

// CreateSaleOrderRequest registra una orden de venta originada en facturación.
type CreateSaleOrderRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int64  `json:"quantity"`
	CustomerName  string `json:"customer_name"`
	InvoiceNumber string `json:"invoice_number"`
}

// FulfillSaleRequest body para POST /api/sales/:id/fulfill.
type FulfillSaleRequest struct {
	DepotID string `json:"depot_id"`
	Lote    string `json:"lote"`
}

// SaleOrderResponse representación de una orden de venta.
type SaleOrderResponse struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"productId"`
	Quantity      int64      `json:"quantity"`
	CustomerName  string     `json:"customerName"`
	InvoiceNumber string     `json:"invoice_number"`
	Status        string     `json:"status"`
	DepotID       string     `json:"depotId,omitempty"`
	Lote          string     `json:"lote,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	FulfilledAt   *time.Time `json:"fulfilledAt,omitempty"`
}

// EligibleLotsResponse lotes que pueden cubrir una orden completa.
type EligibleLotsResponse struct {
	SaleID  string   `json:"saleId"`
	DepotID string   `json:"depotId"`
	Lotes   []LotDTO `json:"lotes"`
}
