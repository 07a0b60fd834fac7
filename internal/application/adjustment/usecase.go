package adjustment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/store"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/ledger"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// UseCase maneja los ajustes de stock con signo: los negativos (merma,
// muestra, corrección) descuentan de inmediato; los positivos crean una
// solicitud que un usuario master aprueba o rechaza exactamente una vez.
type UseCase struct {
	txRunner       store.TxRunner
	depotRepo      repository.DepotRepository
	productRepo    repository.ProductRepository
	adjustmentRepo repository.AdjustmentRepository // lecturas fuera de transacción
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner store.TxRunner,
	depotRepo repository.DepotRepository,
	productRepo repository.ProductRepository,
	adjustmentRepo repository.AdjustmentRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, depotRepo: depotRepo, productRepo: productRepo, adjustmentRepo: adjustmentRepo}
}

// Create registra un ajuste. Negativo: descuenta en la misma llamada (FEFO, o
// del lote puntual si viene Lote) y el ajuste nace resuelto; si no hay stock
// suficiente el ajuste completo se rechaza sin efecto. Positivo: queda
// pendiente sin tocar el libro.
func (uc *UseCase) Create(ctx context.Context, requesterID, requesterName string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.DepotID == "" || in.ProductID == "" || in.Quantity == 0 {
		return nil, domain.ErrValidation
	}
	if strings.TrimSpace(in.Notes) == "" {
		return nil, domain.ErrValidation
	}
	if !entity.ValidAdjustmentType(in.AdjustmentType) {
		return nil, domain.ErrValidation
	}
	depot, err := uc.depotRepo.GetByID(in.DepotID)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	adj := &entity.Adjustment{
		ID:             uuid.New().String(),
		DepotID:        in.DepotID,
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		AdjustmentType: in.AdjustmentType,
		Notes:          in.Notes,
		Lote:           in.Lote,
		RequesterID:    requesterID,
		RequesterName:  requesterName,
		Status:         entity.AdjustmentStatusPending,
		CreatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		adjustmentRepo repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		if adj.Quantity < 0 {
			if err := uc.applyNegative(ledgerRepo, movRepo, adj, now); err != nil {
				return err
			}
			// Los ajustes negativos no tienen estado pendiente: nacen resueltos.
			adj.Status = entity.AdjustmentStatusApproved
			adj.ResolvedAt = &now
			adj.ResolvedBy = requesterID
		}
		return adjustmentRepo.Create(adj)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(adj), nil
}

func (uc *UseCase) applyNegative(ledgerRepo repository.LedgerRepository, movRepo repository.MovementRepository, adj *entity.Adjustment, now time.Time) error {
	qty := -adj.Quantity
	lots, err := ledgerRepo.GetForUpdate(adj.DepotID, adj.ProductID)
	if err != nil {
		return err
	}
	var remaining []entity.Lot
	var consumed []entity.TransferLot
	if adj.Lote != "" {
		remaining, err = ledger.ConsumeFromLot(lots, adj.Lote, qty)
		consumed = []entity.TransferLot{{Lote: adj.Lote, Cantidad: qty}}
	} else {
		remaining, consumed, err = ledger.ConsumeFEFO(lots, qty)
	}
	if err != nil {
		return err
	}
	if err := ledgerRepo.Apply(adj.DepotID, adj.ProductID, remaining); err != nil {
		return err
	}
	for _, c := range consumed {
		if err := movRepo.Create(&entity.Movement{
			ID:        uuid.New().String(),
			Type:      entity.MovementTypeAdjustment,
			DepotID:   adj.DepotID,
			ProductID: adj.ProductID,
			Lote:      c.Lote,
			Quantity:  -c.Cantidad,
			Reference: adj.ID,
			CreatedAt: now,
			CreatedBy: adj.RequesterID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Approve aplica un ajuste positivo pendiente: agrega el stock bajo la clave
// sintética "AJUSTE-<id corto>" para que sea rastreable en el libro, y marca
// el ajuste aprobado. La guarda de estado hace la resolución exactamente una
// vez: un segundo Approve (o un Approve tras Reject) falla con
// ErrInvalidStateTransition sin efecto en el libro.
func (uc *UseCase) Approve(ctx context.Context, approverID, adjustmentID string) (*dto.AdjustmentResponse, error) {
	var out *entity.Adjustment
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		adjustmentRepo repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		adj, err := adjustmentRepo.GetForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.Status != entity.AdjustmentStatusPending {
			return domain.ErrInvalidStateTransition
		}
		now := time.Now()
		syntheticKey := SyntheticLotKey(adj.ID)
		lots, err := ledgerRepo.GetForUpdate(adj.DepotID, adj.ProductID)
		if err != nil {
			return err
		}
		merged := ledger.Merge(lots, adj.DepotID, adj.ProductID, syntheticKey, adj.Quantity)
		if err := ledgerRepo.Apply(adj.DepotID, adj.ProductID, merged); err != nil {
			return err
		}
		if err := movRepo.Create(&entity.Movement{
			ID:        uuid.New().String(),
			Type:      entity.MovementTypeAdjustment,
			DepotID:   adj.DepotID,
			ProductID: adj.ProductID,
			Lote:      syntheticKey,
			Quantity:  adj.Quantity,
			Reference: adj.ID,
			CreatedAt: now,
			CreatedBy: approverID,
		}); err != nil {
			return err
		}
		adj.Status = entity.AdjustmentStatusApproved
		adj.ResolvedAt = &now
		adj.ResolvedBy = approverID
		out = adj
		return adjustmentRepo.Update(adj)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(out), nil
}

// Reject rechaza un ajuste positivo pendiente con un motivo obligatorio.
// Misma guarda de estado que Approve; no toca el libro.
func (uc *UseCase) Reject(ctx context.Context, approverID, adjustmentID, reason string) (*dto.AdjustmentResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrValidation
	}
	var out *entity.Adjustment
	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.MovementRepository,
		_ repository.TransferRepository,
		adjustmentRepo repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		adj, err := adjustmentRepo.GetForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.Status != entity.AdjustmentStatusPending {
			return domain.ErrInvalidStateTransition
		}
		now := time.Now()
		adj.Status = entity.AdjustmentStatusRejected
		adj.RejectionReason = reason
		adj.ResolvedAt = &now
		adj.ResolvedBy = approverID
		out = adj
		return adjustmentRepo.Update(adj)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(out), nil
}

// GetByID devuelve un ajuste por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return uc.response(adj), nil
}

// List lista ajustes, opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) (*dto.AdjustmentListResponse, error) {
	list, err := uc.adjustmentRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *uc.response(a))
	}
	return &dto.AdjustmentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// SyntheticLotKey deriva la clave de lote sintética de un ajuste aprobado.
// Ordena después de toda clave "YYYY-MM-DD", así FEFO consume primero el
// stock fechado.
func SyntheticLotKey(adjustmentID string) string {
	short := adjustmentID
	if len(short) > 8 {
		short = short[:8]
	}
	return "AJUSTE-" + strings.ToUpper(short)
}

func (uc *UseCase) response(a *entity.Adjustment) *dto.AdjustmentResponse {
	resp := &dto.AdjustmentResponse{
		ID:              a.ID,
		DepotID:         a.DepotID,
		ProductID:       a.ProductID,
		Quantity:        a.Quantity,
		AdjustmentType:  a.AdjustmentType,
		Notes:           a.Notes,
		RequesterID:     a.RequesterID,
		RequesterName:   a.RequesterName,
		Status:          a.Status,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
		ResolvedAt:      a.ResolvedAt,
	}
	if d, _ := uc.depotRepo.GetByID(a.DepotID); d != nil {
		resp.DepotName = d.Name
	}
	return resp
}
