package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// SaleOrderRepository define el puerto de persistencia para SaleOrder.
type SaleOrderRepository interface {
	Create(order *entity.SaleOrder) error
	GetByID(id string) (*entity.SaleOrder, error)
	GetForUpdate(id string) (*entity.SaleOrder, error)
	Update(order *entity.SaleOrder) error
	List(status string, limit, offset int) ([]*entity.SaleOrder, error)
}
