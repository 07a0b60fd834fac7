package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// MovementRepository define el puerto del registro append-only de movimientos.
// Solo se inserta; no existe Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	List(depotID, productID string, limit, offset int) ([]*entity.Movement, error)
}
