package sales

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

// UseCase despacha órdenes de venta contra un lote puntual de un depósito.
// La orden se origina en facturación (fuera del motor); acá solo se registra
// y se despacha.
type UseCase struct {
	txRunner    store.TxRunner
	depotRepo   repository.DepotRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleOrderRepository // lecturas fuera de transacción
	ledgerRepo  repository.LedgerRepository    // lecturas fuera de transacción
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner store.TxRunner,
	depotRepo repository.DepotRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleOrderRepository,
	ledgerRepo repository.LedgerRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, depotRepo: depotRepo, productRepo: productRepo, saleRepo: saleRepo, ledgerRepo: ledgerRepo}
}

// CreateOrder registra una orden de venta externa en estado pendiente.
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreateSaleOrderRequest) (*dto.SaleOrderResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.CustomerName == "" {
		return nil, domain.ErrValidation
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	order := &entity.SaleOrder{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		CustomerName:  in.CustomerName,
		InvoiceNumber: in.InvoiceNumber,
		Status:        entity.SaleStatusPending,
		CreatedAt:     time.Now(),
	}
	if err := uc.saleRepo.Create(order); err != nil {
		return nil, err
	}
	return toSaleResponse(order), nil
}

// ListEligibleLots devuelve los lotes del depósito que pueden cubrir la orden
// completa, ordenados por vencimiento más próximo. Una venta sale de
// exactamente un lote: los que no alcanzan individualmente no se ofrecen
// aunque sumados cubran la orden. El listado puede quedar obsoleto; Fulfill
// re-verifica al confirmar.
func (uc *UseCase) ListEligibleLots(ctx context.Context, saleID, depotID string) (*dto.EligibleLotsResponse, error) {
	if depotID == "" {
		return nil, domain.ErrValidation
	}
	order, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := uc.ledgerRepo.Get(depotID, order.ProductID)
	if err != nil {
		return nil, err
	}
	eligible := ledger.EligibleLots(lots, order.Quantity)
	resp := &dto.EligibleLotsResponse{SaleID: saleID, DepotID: depotID, Lotes: make([]dto.LotDTO, 0, len(eligible))}
	for _, l := range eligible {
		resp.Lotes = append(resp.Lotes, dto.LotDTO{Lote: l.Lote, Cantidad: l.Cantidad})
	}
	return resp, nil
}

// Fulfill despacha una orden pendiente desde el lote elegido. Re-verifica al
// momento del commit que el lote todavía cubra la cantidad (el listado previo
// pudo quedar obsoleto); si ya no alcanza devuelve ErrStaleLotState y el
// caller debe volver a listar y reintentar.
func (uc *UseCase) Fulfill(ctx context.Context, userID, saleID string, in dto.FulfillSaleRequest) (*dto.SaleOrderResponse, error) {
	if in.DepotID == "" || in.Lote == "" {
		return nil, domain.ErrValidation
	}
	var out *entity.SaleOrder
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		_ repository.AdjustmentRepository,
		saleRepo repository.SaleOrderRepository,
	) error {
		order, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.SaleStatusPending {
			return domain.ErrInvalidStateTransition
		}
		lot, err := ledgerRepo.GetLotForUpdate(in.DepotID, order.ProductID, in.Lote)
		if err != nil {
			return err
		}
		if lot == nil || lot.Cantidad < order.Quantity {
			return domain.ErrStaleLotState
		}
		lots, err := ledgerRepo.GetForUpdate(in.DepotID, order.ProductID)
		if err != nil {
			return err
		}
		remaining, err := ledger.ConsumeFromLot(lots, in.Lote, order.Quantity)
		if err != nil {
			return err
		}
		if err := ledgerRepo.Apply(in.DepotID, order.ProductID, remaining); err != nil {
			return err
		}
		now := time.Now()
		if err := movRepo.Create(&entity.Movement{
			ID:        uuid.New().String(),
			Type:      entity.MovementTypeSale,
			DepotID:   in.DepotID,
			ProductID: order.ProductID,
			Lote:      in.Lote,
			Quantity:  -order.Quantity,
			Reference: order.ID,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}
		order.Status = entity.SaleStatusFulfilled
		order.DepotID = in.DepotID
		order.Lote = in.Lote
		order.FulfilledAt = &now
		out = order
		return saleRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(out), nil
}

// GetByID devuelve una orden por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleOrderResponse, error) {
	order, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(order), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.SaleOrderResponse, error) {
	list, err := uc.saleRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toSaleResponse(o))
	}
	return items, nil
}

func toSaleResponse(o *entity.SaleOrder) *dto.SaleOrderResponse {
	return &dto.SaleOrderResponse{
		ID:            o.ID,
		ProductID:     o.ProductID,
		Quantity:      o.Quantity,
		CustomerName:  o.CustomerName,
		InvoiceNumber: o.InvoiceNumber,
		Status:        o.Status,
		DepotID:       o.DepotID,
		Lote:          o.Lote,
		CreatedAt:     o.CreatedAt,
		FulfilledAt:   o.FulfilledAt,
	}
}
