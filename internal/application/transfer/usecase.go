package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/store"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/ledger"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// UseCase orquesta los traslados del depósito primario hacia los secundarios
// mediante la máquina de estados pendiente → recibida → distribuida.
type UseCase struct {
	txRunner     store.TxRunner
	depotRepo    repository.DepotRepository
	productRepo  repository.ProductRepository
	transferRepo repository.TransferRepository // lecturas fuera de transacción
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner store.TxRunner,
	depotRepo repository.DepotRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, depotRepo: depotRepo, productRepo: productRepo, transferRepo: transferRepo}
}

// Create inicia un traslado: descuenta TotalQuantity del libro del depósito
// origen consumiendo FEFO, captura exactamente qué lotes salieron y persiste
// el traslado en estado pendiente, todo en una transacción. Si el descuento
// falla no se crea ningún traslado. Este es el único paso que quita stock del
// origen; hasta la distribución las unidades viven solo en el snapshot del
// traslado.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromDepotID == "" || in.ToDepotID == "" || in.ProductID == "" || in.TotalQuantity <= 0 {
		return nil, domain.ErrValidation
	}
	if in.FromDepotID == in.ToDepotID {
		return nil, domain.ErrValidation
	}
	from, err := uc.depotRepo.GetByID(in.FromDepotID)
	if err != nil {
		return nil, err
	}
	to, err := uc.depotRepo.GetByID(in.ToDepotID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.ErrNotFound
	}
	if !from.IsPrimary() || to.IsPrimary() {
		return nil, domain.ErrValidation
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:            uuid.New().String(),
		FromDepotID:   in.FromDepotID,
		ToDepotID:     in.ToDepotID,
		ProductID:     in.ProductID,
		TotalQuantity: in.TotalQuantity,
		Status:        entity.TransferStatusPending,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		lots, err := ledgerRepo.GetForUpdate(in.FromDepotID, in.ProductID)
		if err != nil {
			return err
		}
		remaining, consumed, err := ledger.ConsumeFEFO(lots, in.TotalQuantity)
		if err != nil {
			return err
		}
		if err := ledgerRepo.Apply(in.FromDepotID, in.ProductID, remaining); err != nil {
			return err
		}
		t.Lots = consumed
		if err := transferRepo.Create(t); err != nil {
			return err
		}
		for _, c := range consumed {
			if err := movRepo.Create(&entity.Movement{
				ID:        uuid.New().String(),
				Type:      entity.MovementTypeTransferOut,
				DepotID:   in.FromDepotID,
				ProductID: in.ProductID,
				Lote:      c.Lote,
				Quantity:  -c.Cantidad,
				Reference: t.ID,
				CreatedAt: now,
				CreatedBy: userID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.response(t), nil
}

// Receive confirma la recepción de un traslado pendiente. No mueve cantidades:
// solo transiciona el estado y estampa la fecha.
func (uc *UseCase) Receive(ctx context.Context, transferID string) (*dto.TransferResponse, error) {
	var out *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.MovementRepository,
		transferRepo repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status != entity.TransferStatusPending {
			return domain.ErrInvalidStateTransition
		}
		now := time.Now()
		t.Status = entity.TransferStatusReceived
		t.ReceivedAt = &now
		out = t
		return transferRepo.Update(t)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(out), nil
}

// Distribute reparte un traslado recibido entre depósitos destino y venta
// directa. La asignación se valida completa como función pura antes de
// escribir: cada lote del traslado debe quedar cubierto exactamente. Luego
// todas las entradas a los libros destino, la auditoría de venta directa y la
// transición de estado se aplican en una única transacción multi-libro;
// cualquier falla la aborta entera — nunca es observable una distribución
// parcial.
func (uc *UseCase) Distribute(ctx context.Context, userID, transferID string, alloc ledger.Allocation) (*dto.TransferResponse, error) {
	if len(alloc) == 0 {
		return nil, domain.ErrValidation
	}
	// Los depósitos destino son datos de referencia: se validan antes de abrir
	// la transacción.
	for _, dests := range alloc {
		for dest := range dests {
			if dest == entity.DirectSaleKey {
				continue
			}
			depot, err := uc.depotRepo.GetByID(dest)
			if err != nil {
				return nil, err
			}
			if depot == nil {
				return nil, domain.ErrNotFound
			}
		}
	}

	var out *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status != entity.TransferStatusReceived {
			return domain.ErrInvalidStateTransition
		}
		writes, direct, err := ledger.ValidateAllocation(t.Lots, alloc)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, w := range writes {
			if err := ledgerRepo.AddQuantity(w.DepotID, t.ProductID, w.Lote, w.Cantidad); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.Movement{
				ID:        uuid.New().String(),
				Type:      entity.MovementTypeDistribution,
				DepotID:   w.DepotID,
				ProductID: t.ProductID,
				Lote:      w.Lote,
				Quantity:  w.Cantidad,
				Reference: t.ID,
				CreatedAt: now,
				CreatedBy: userID,
			}); err != nil {
				return err
			}
		}
		// La venta directa no escribe en ningún libro: esas unidades salieron
		// del sistema durante el tránsito y solo quedan auditadas aquí.
		t.DirectSales = direct
		t.Status = entity.TransferStatusDistributed
		t.DistributedAt = &now
		out = t
		return transferRepo.Update(t)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(out), nil
}

// GetByID devuelve un traslado por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return uc.response(t), nil
}

// List lista traslados, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *uc.response(t))
	}
	return &dto.TransferListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *UseCase) response(t *entity.Transfer) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:            t.ID,
		FromID:        t.FromDepotID,
		ToID:          t.ToDepotID,
		ProductID:     t.ProductID,
		TotalQuantity: t.TotalQuantity,
		Lotes:         toLotDTOs(t.Lots),
		DirectSales:   toLotDTOs(t.DirectSales),
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		ReceivedAt:    t.ReceivedAt,
		DistributedAt: t.DistributedAt,
	}
	if d, _ := uc.depotRepo.GetByID(t.FromDepotID); d != nil {
		resp.FromName = d.Name
	}
	if d, _ := uc.depotRepo.GetByID(t.ToDepotID); d != nil {
		resp.ToName = d.Name
	}
	if p, _ := uc.productRepo.GetByID(t.ProductID); p != nil {
		resp.ProductName = p.Name
	}
	return resp
}

func toLotDTOs(lots []entity.TransferLot) []dto.LotDTO {
	out := make([]dto.LotDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.LotDTO{Lote: l.Lote, Cantidad: l.Cantidad})
	}
	return out
}
