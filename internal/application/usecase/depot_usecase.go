package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// DepotUseCase casos de uso CRUD para depósitos. Los depósitos se crean por
// configuración y nunca se eliminan mientras posean stock.
type DepotUseCase struct {
	repo       repository.DepotRepository
	ledgerRepo repository.LedgerRepository
}

// NewDepotUseCase construye el caso de uso.
func NewDepotUseCase(repo repository.DepotRepository, ledgerRepo repository.LedgerRepository) *DepotUseCase {
	return &DepotUseCase{repo: repo, ledgerRepo: ledgerRepo}
}

// Create crea un nuevo depósito.
func (uc *DepotUseCase) Create(in dto.CreateDepotRequest) (*dto.DepotResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation
	}
	if in.Type != entity.DepotTypePrimary && in.Type != entity.DepotTypeSecondary {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	depot := &entity.Depot{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		City:      in.City,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(depot); err != nil {
		return nil, err
	}
	return toDepotResponse(depot), nil
}

// GetByID obtiene un depósito por ID.
func (uc *DepotUseCase) GetByID(id string) (*dto.DepotResponse, error) {
	depot, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, domain.ErrNotFound
	}
	return toDepotResponse(depot), nil
}

// List lista depósitos con paginación.
func (uc *DepotUseCase) List(limit, offset int) (*dto.DepotListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepotResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDepotResponse(d))
	}
	return &dto.DepotListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina un depósito solo si su libro está vacío; con stock devuelve
// ErrConflict.
func (uc *DepotUseCase) Delete(id string) error {
	depot, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if depot == nil {
		return domain.ErrNotFound
	}
	total, err := uc.ledgerRepo.DepotAggregate(id)
	if err != nil {
		return err
	}
	if total > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toDepotResponse(d *entity.Depot) *dto.DepotResponse {
	return &dto.DepotResponse{
		ID:        d.ID,
		Name:      d.Name,
		Type:      d.Type,
		City:      d.City,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
