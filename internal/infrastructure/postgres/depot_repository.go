package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.DepotRepository = (*DepotRepo)(nil)

// DepotRepo implementación de DepotRepository sobre PostgreSQL.
type DepotRepo struct {
	q Querier
}

// NewDepotRepository construye el adaptador de depósitos.
func NewDepotRepository(q Querier) *DepotRepo {
	return &DepotRepo{q: q}
}

// Create inserta un depósito.
func (r *DepotRepo) Create(depot *entity.Depot) error {
	query := `
		INSERT INTO depots (id, name, type, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		depot.ID, depot.Name, depot.Type, depot.City, depot.CreatedAt, depot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert depot: %w", err)
	}
	return nil
}

// GetByID obtiene un depósito por ID. Devuelve nil si no existe.
func (r *DepotRepo) GetByID(id string) (*entity.Depot, error) {
	query := `SELECT id, name, type, city, created_at, updated_at FROM depots WHERE id = $1`
	var d entity.Depot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.Type, &d.City, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depot: %w", err)
	}
	return &d, nil
}

// List lista depósitos con paginación.
func (r *DepotRepo) List(limit, offset int) ([]*entity.Depot, error) {
	query := `
		SELECT id, name, type, city, created_at, updated_at
		FROM depots ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list depots: %w", err)
	}
	defer rows.Close()

	var out []*entity.Depot
	for rows.Next() {
		var d entity.Depot
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.City, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan depot: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Delete elimina un depósito. El caller verifica antes que su libro esté vacío.
func (r *DepotRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM depots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete depot: %w", err)
	}
	return nil
}
