package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para Adjustment.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	GetForUpdate(id string) (*entity.Adjustment, error)
	Update(adjustment *entity.Adjustment) error
	List(status string, limit, offset int) ([]*entity.Adjustment, error)
}
