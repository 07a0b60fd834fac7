package dto

// RegisterProductionRequest body para POST /api/production.
// Lote es la fecha de vencimiento "YYYY-MM-DD" del lote producido.
type RegisterProductionRequest struct {
	DepotID   string `json:"depot_id"`
	ProductID string `json:"product_id"`
	Lote      string `json:"lote"`
	Cantidad  int64  `json:"cantidad"`
}
