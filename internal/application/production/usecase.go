package production

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

// UseCase registra producción terminada como lotes fechados en el libro del
// depósito primario. La producción es una fuente confiable: no requiere
// aprobación.
type UseCase struct {
	txRunner    store.TxRunner
	depotRepo   repository.DepotRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner store.TxRunner, depotRepo repository.DepotRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, depotRepo: depotRepo, productRepo: productRepo}
}

// RegisterProduction suma Cantidad al lote indicado del depósito primario
// (fusionando por clave de vencimiento) y deja el movimiento de auditoría en
// la misma transacción.
func (uc *UseCase) RegisterProduction(ctx context.Context, userID string, in dto.RegisterProductionRequest) error {
	if in.DepotID == "" || in.ProductID == "" || in.Cantidad <= 0 {
		return domain.ErrValidation
	}
	if _, err := time.Parse("2006-01-02", in.Lote); err != nil {
		return domain.ErrValidation
	}

	depot, err := uc.depotRepo.GetByID(in.DepotID)
	if err != nil {
		return err
	}
	if depot == nil {
		return domain.ErrNotFound
	}
	if !depot.IsPrimary() {
		return domain.ErrValidation
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		lots, err := ledgerRepo.GetForUpdate(in.DepotID, in.ProductID)
		if err != nil {
			return err
		}
		merged := ledger.Merge(lots, in.DepotID, in.ProductID, in.Lote, in.Cantidad)
		if err := ledgerRepo.Apply(in.DepotID, in.ProductID, merged); err != nil {
			return err
		}
		return movRepo.Create(&entity.Movement{
			ID:        uuid.New().String(),
			Type:      entity.MovementTypeProduction,
			DepotID:   in.DepotID,
			ProductID: in.ProductID,
			Lote:      in.Lote,
			Quantity:  in.Cantidad,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
}
