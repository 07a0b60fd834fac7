package dto

// LotDTO un lote dentro del libro o de un traslado.
type LotDTO struct {
	Lote     string `json:"lote"`
	Cantidad int64  `json:"cantidad"`
}

// LedgerEntryDTO lotes de un producto en el snapshot de un depósito.
type LedgerEntryDTO struct {
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	Lotes       []LotDTO `json:"lotes"`
}

// LedgerSnapshotResponse libro completo de un depósito.
type LedgerSnapshotResponse struct {
	DepotID string           `json:"depotId"`
	Entries []LedgerEntryDTO `json:"entries"`
}
