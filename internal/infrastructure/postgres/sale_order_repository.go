package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.SaleOrderRepository = (*SaleOrderRepo)(nil)

// SaleOrderRepo implementación de SaleOrderRepository sobre PostgreSQL.
type SaleOrderRepo struct {
	q Querier
}

// NewSaleOrderRepository construye el adaptador de órdenes de venta.
func NewSaleOrderRepository(q Querier) *SaleOrderRepo {
	return &SaleOrderRepo{q: q}
}

const saleColumns = `
	id, product_id, quantity, customer_name, invoice_number, status,
	depot_id, lote, created_at, fulfilled_at`

// Create inserta una orden de venta pendiente.
func (r *SaleOrderRepo) Create(o *entity.SaleOrder) error {
	query := `
		INSERT INTO sale_orders (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ProductID, o.Quantity, o.CustomerName, o.InvoiceNumber, o.Status,
		o.DepotID, o.Lote, o.CreatedAt, o.FulfilledAt)
	if err != nil {
		return fmt.Errorf("insert sale order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve nil si no existe.
func (r *SaleOrderRepo) GetByID(id string) (*entity.SaleOrder, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene una orden bloqueando la fila para el despacho.
func (r *SaleOrderRepo) GetForUpdate(id string) (*entity.SaleOrder, error) {
	return r.get(id, true)
}

func (r *SaleOrderRepo) get(id string, forUpdate bool) (*entity.SaleOrder, error) {
	query := `SELECT ` + saleColumns + ` FROM sale_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	o, err := scanSaleOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale order: %w", err)
	}
	return o, nil
}

// Update persiste el despacho de una orden.
func (r *SaleOrderRepo) Update(o *entity.SaleOrder) error {
	query := `
		UPDATE sale_orders
		SET status = $2, depot_id = $3, lote = $4, fulfilled_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, o.ID, o.Status, o.DepotID, o.Lote, o.FulfilledAt)
	if err != nil {
		return fmt.Errorf("update sale order: %w", err)
	}
	return nil
}

// List lista órdenes, opcionalmente por estado, más recientes primero.
func (r *SaleOrderRepo) List(status string, limit, offset int) ([]*entity.SaleOrder, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sale_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sale orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleOrder
	for rows.Next() {
		o, err := scanSaleOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanSaleOrder(row pgx.Row) (*entity.SaleOrder, error) {
	var o entity.SaleOrder
	err := row.Scan(
		&o.ID, &o.ProductID, &o.Quantity, &o.CustomerName, &o.InvoiceNumber, &o.Status,
		&o.DepotID, &o.Lote, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
