package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// DepotRepository define el puerto de persistencia para Depot (DIP).
type DepotRepository interface {
	Create(depot *entity.Depot) error
	GetByID(id string) (*entity.Depot, error)
	List(limit, offset int) ([]*entity.Depot, error)
	Delete(id string) error
}
