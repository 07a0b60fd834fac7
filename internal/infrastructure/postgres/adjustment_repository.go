package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de ajustes.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `
	id, depot_id, product_id, quantity, adjustment_type, notes, lote,
	requester_id, requester_name, status, rejection_reason, created_at, resolved_at, resolved_by`

// Create inserta un ajuste.
func (r *AdjustmentRepo) Create(a *entity.Adjustment) error {
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.DepotID, a.ProductID, a.Quantity, a.AdjustmentType, a.Notes, a.Lote,
		a.RequesterID, a.RequesterName, a.Status, a.RejectionReason, a.CreatedAt, a.ResolvedAt, a.ResolvedBy)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID. Devuelve nil si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene un ajuste bloqueando la fila; sostiene la garantía de
// resolución exactamente-una-vez bajo llamadas duplicadas.
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.Adjustment, error) {
	return r.get(id, true)
}

func (r *AdjustmentRepo) get(id string, forUpdate bool) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	a, err := scanAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

// Update persiste la resolución de un ajuste.
func (r *AdjustmentRepo) Update(a *entity.Adjustment) error {
	query := `
		UPDATE adjustments
		SET status = $2, rejection_reason = $3, resolved_at = $4, resolved_by = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.Status, a.RejectionReason, a.ResolvedAt, a.ResolvedBy)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	return nil
}

// List lista ajustes, opcionalmente por estado, más recientes primero.
func (r *AdjustmentRepo) List(status string, limit, offset int) ([]*entity.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + ` FROM adjustments
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Adjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	err := row.Scan(
		&a.ID, &a.DepotID, &a.ProductID, &a.Quantity, &a.AdjustmentType, &a.Notes, &a.Lote,
		&a.RequesterID, &a.RequesterName, &a.Status, &a.RejectionReason, &a.CreatedAt, &a.ResolvedAt, &a.ResolvedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
