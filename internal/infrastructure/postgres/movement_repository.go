package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only de MovementRepository sobre
// PostgreSQL. Solo INSERT y SELECT; la tabla no se actualiza nunca.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento de auditoría.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, depot_id, product_id, lote, quantity, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.DepotID, m.ProductID, m.Lote, m.Quantity, m.Reference, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista movimientos filtrables por depósito y producto, más recientes
// primero.
func (r *MovementRepo) List(depotID, productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, type, depot_id, product_id, lote, quantity, reference, created_at, created_by
		FROM movements
		WHERE ($1 = '' OR depot_id = $1) AND ($2 = '' OR product_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, depotID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.DepotID, &m.ProductID, &m.Lote, &m.Quantity, &m.Reference, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
