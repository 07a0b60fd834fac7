package transfer

import (
	"context"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// GuideGenerator puerto para renderizar la guía de distribución en PDF.
type GuideGenerator interface {
	GenerateGuide(ctx context.Context, t *entity.Transfer, from, to *entity.Depot, product *entity.Product) ([]byte, error)
}

// GuideUseCase genera la guía de distribución (PDF) de un traslado ya
// distribuido: depósitos, tabla de lotes, venta directa y peso total.
type GuideUseCase struct {
	transferRepo repository.TransferRepository
	depotRepo    repository.DepotRepository
	productRepo  repository.ProductRepository
	generator    GuideGenerator
}

// NewGuideUseCase construye el caso de uso.
func NewGuideUseCase(
	transferRepo repository.TransferRepository,
	depotRepo repository.DepotRepository,
	productRepo repository.ProductRepository,
	generator GuideGenerator,
) *GuideUseCase {
	return &GuideUseCase{transferRepo: transferRepo, depotRepo: depotRepo, productRepo: productRepo, generator: generator}
}

// Generate devuelve los bytes del PDF. Solo los traslados distribuidos tienen
// guía; para cualquier otro estado devuelve ErrInvalidStateTransition.
func (uc *GuideUseCase) Generate(ctx context.Context, transferID string) ([]byte, error) {
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.Status != entity.TransferStatusDistributed {
		return nil, domain.ErrInvalidStateTransition
	}
	from, err := uc.depotRepo.GetByID(t.FromDepotID)
	if err != nil {
		return nil, err
	}
	to, err := uc.depotRepo.GetByID(t.ToDepotID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(t.ProductID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil || product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateGuide(ctx, t, from, to, product)
}
