package usecase

import (
	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/ledger"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// LedgerUseCase consultas de solo lectura sobre el libro de lotes y el
// historial de movimientos. Toda mutación pasa por los casos de uso de
// producción, traslados, ajustes y ventas.
type LedgerUseCase struct {
	depotRepo    repository.DepotRepository
	ledgerRepo   repository.LedgerRepository
	movementRepo repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(depotRepo repository.DepotRepository, ledgerRepo repository.LedgerRepository, movementRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{depotRepo: depotRepo, ledgerRepo: ledgerRepo, movementRepo: movementRepo}
}

// Snapshot devuelve el libro completo de un depósito agrupado por producto,
// con los lotes en orden FEFO.
func (uc *LedgerUseCase) Snapshot(depotID string) (*dto.LedgerSnapshotResponse, error) {
	depot, err := uc.depotRepo.GetByID(depotID)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.Snapshot(depotID)
	if err != nil {
		return nil, err
	}
	resp := &dto.LedgerSnapshotResponse{DepotID: depotID, Entries: make([]dto.LedgerEntryDTO, 0, len(entries))}
	for _, e := range entries {
		ledger.SortFEFO(e.Lots)
		item := dto.LedgerEntryDTO{ProductID: e.ProductID, ProductName: e.ProductName, Lotes: make([]dto.LotDTO, 0, len(e.Lots))}
		for _, l := range e.Lots {
			item.Lotes = append(item.Lotes, dto.LotDTO{Lote: l.Lote, Cantidad: l.Cantidad})
		}
		resp.Entries = append(resp.Entries, item)
	}
	return resp, nil
}

// Movements lista el historial append-only, filtrable por depósito y producto.
func (uc *LedgerUseCase) Movements(depotID, productID string, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movementRepo.List(depotID, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, m := range list {
		resp.Items = append(resp.Items, dto.MovementResponse{
			ID:        m.ID,
			Type:      m.Type,
			DepotID:   m.DepotID,
			ProductID: m.ProductID,
			Lote:      m.Lote,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return resp, nil
}
