package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
// El snapshot de lotes y la venta directa se guardan como JSONB: son
// documentos inmutables capturados en la creación/distribución.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create inserta un traslado recién iniciado.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	lots, err := json.Marshal(t.Lots)
	if err != nil {
		return fmt.Errorf("marshal lotes: %w", err)
	}
	query := `
		INSERT INTO transfers
			(id, from_depot_id, to_depot_id, product_id, total_quantity, lotes, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		t.ID, t.FromDepotID, t.ToDepotID, t.ProductID, t.TotalQuantity, lots, t.Status, t.CreatedAt, t.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID. Devuelve nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene un traslado bloqueando la fila para las transiciones
// de estado.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.get(id, true)
}

func (r *TransferRepo) get(id string, forUpdate bool) (*entity.Transfer, error) {
	query := `
		SELECT id, from_depot_id, to_depot_id, product_id, total_quantity,
		       lotes, direct_sales, status, created_at, received_at, distributed_at, created_by
		FROM transfers WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// Update persiste una transición de estado (recibida o distribuida).
func (r *TransferRepo) Update(t *entity.Transfer) error {
	direct, err := json.Marshal(t.DirectSales)
	if err != nil {
		return fmt.Errorf("marshal venta directa: %w", err)
	}
	query := `
		UPDATE transfers
		SET status = $2, received_at = $3, distributed_at = $4, direct_sales = $5
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query, t.ID, t.Status, t.ReceivedAt, t.DistributedAt, direct)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// List lista traslados, opcionalmente por estado, más recientes primero.
func (r *TransferRepo) List(status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, from_depot_id, to_depot_id, product_id, total_quantity,
		       lotes, direct_sales, status, created_at, received_at, distributed_at, created_by
		FROM transfers
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var lots, direct []byte
	err := row.Scan(
		&t.ID, &t.FromDepotID, &t.ToDepotID, &t.ProductID, &t.TotalQuantity,
		&lots, &direct, &t.Status, &t.CreatedAt, &t.ReceivedAt, &t.DistributedAt, &t.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(lots) > 0 {
		if err := json.Unmarshal(lots, &t.Lots); err != nil {
			return nil, fmt.Errorf("unmarshal lotes: %w", err)
		}
	}
	if len(direct) > 0 {
		if err := json.Unmarshal(direct, &t.DirectSales); err != nil {
			return nil, fmt.Errorf("unmarshal venta directa: %w", err)
		}
	}
	return &t, nil
}
