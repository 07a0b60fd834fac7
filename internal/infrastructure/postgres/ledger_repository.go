package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con
// pool o tx). La tabla lotes tiene PK (depot_id, product_id, lote) y el check
// cantidad >= 0 como última línea de defensa del invariante de no-negatividad.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Get obtiene los lotes de un producto en un depósito.
func (r *LedgerRepo) Get(depotID, productID string) ([]entity.Lot, error) {
	return r.get(depotID, productID, false)
}

// GetForUpdate obtiene los lotes y bloquea las filas (SELECT FOR UPDATE).
func (r *LedgerRepo) GetForUpdate(depotID, productID string) ([]entity.Lot, error) {
	return r.get(depotID, productID, true)
}

func (r *LedgerRepo) get(depotID, productID string, forUpdate bool) ([]entity.Lot, error) {
	query := `
		SELECT depot_id, product_id, lote, cantidad, updated_at
		FROM lotes WHERE depot_id = $1 AND product_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	rows, err := r.q.Query(context.Background(), query, depotID, productID)
	if err != nil {
		return nil, fmt.Errorf("get lotes: %w", err)
	}
	defer rows.Close()

	var lots []entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.DepotID, &l.ProductID, &l.Lote, &l.Cantidad, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// GetLotForUpdate obtiene un lote puntual bloqueando la fila. Devuelve nil si
// no existe.
func (r *LedgerRepo) GetLotForUpdate(depotID, productID, lote string) (*entity.Lot, error) {
	query := `
		SELECT depot_id, product_id, lote, cantidad, updated_at
		FROM lotes WHERE depot_id = $1 AND product_id = $2 AND lote = $3
		FOR UPDATE`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, depotID, productID, lote).Scan(
		&l.DepotID, &l.ProductID, &l.Lote, &l.Cantidad, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote for update: %w", err)
	}
	return &l, nil
}

// Apply persiste el resultado de una mutación: upsert de cada lote con
// cantidad > 0 y eliminación física de los que quedaron en cero.
func (r *LedgerRepo) Apply(depotID, productID string, lots []entity.Lot) error {
	for _, l := range lots {
		if l.Cantidad == 0 {
			query := `DELETE FROM lotes WHERE depot_id = $1 AND product_id = $2 AND lote = $3`
			if _, err := r.q.Exec(context.Background(), query, depotID, productID, l.Lote); err != nil {
				return fmt.Errorf("delete lote vacío: %w", err)
			}
			continue
		}
		query := `
			INSERT INTO lotes (depot_id, product_id, lote, cantidad, updated_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (depot_id, product_id, lote)
			DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = now()`
		if _, err := r.q.Exec(context.Background(), query, depotID, productID, l.Lote, l.Cantidad); err != nil {
			return fmt.Errorf("upsert lote: %w", err)
		}
	}
	return nil
}

// AddQuantity suma qty al lote (upsert acumulativo), para las entradas de
// distribución.
func (r *LedgerRepo) AddQuantity(depotID, productID, lote string, qty int64) error {
	query := `
		INSERT INTO lotes (depot_id, product_id, lote, cantidad, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (depot_id, product_id, lote)
		DO UPDATE SET cantidad = lotes.cantidad + EXCLUDED.cantidad, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, depotID, productID, lote, qty); err != nil {
		return fmt.Errorf("sumar a lote: %w", err)
	}
	return nil
}

// Snapshot devuelve el libro completo de un depósito agrupado por producto.
func (r *LedgerRepo) Snapshot(depotID string) ([]repository.LedgerEntry, error) {
	query := `
		SELECT l.product_id, p.name, l.lote, l.cantidad, l.updated_at
		FROM lotes l
		JOIN products p ON p.id = l.product_id
		WHERE l.depot_id = $1 AND l.cantidad > 0
		ORDER BY l.product_id, l.lote`
	rows, err := r.q.Query(context.Background(), query, depotID)
	if err != nil {
		return nil, fmt.Errorf("snapshot libro: %w", err)
	}
	defer rows.Close()

	var entries []repository.LedgerEntry
	index := map[string]int{}
	for rows.Next() {
		var productName string
		var l entity.Lot
		l.DepotID = depotID
		if err := rows.Scan(&l.ProductID, &productName, &l.Lote, &l.Cantidad, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		i, ok := index[l.ProductID]
		if !ok {
			entries = append(entries, repository.LedgerEntry{ProductID: l.ProductID, ProductName: productName})
			i = len(entries) - 1
			index[l.ProductID] = i
		}
		entries[i].Lots = append(entries[i].Lots, l)
	}
	return entries, rows.Err()
}

// DepotAggregate devuelve las unidades totales que posee un depósito.
func (r *LedgerRepo) DepotAggregate(depotID string) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(cantidad), 0) FROM lotes WHERE depot_id = $1`
	if err := r.q.QueryRow(context.Background(), query, depotID).Scan(&total); err != nil {
		return 0, fmt.Errorf("agregado depósito: %w", err)
	}
	return total, nil
}
