package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para Transfer.
// Los traslados nunca se eliminan; solo mutan por transición de estado.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	GetForUpdate(id string) (*entity.Transfer, error)
	Update(transfer *entity.Transfer) error
	List(status string, limit, offset int) ([]*entity.Transfer, error)
}
